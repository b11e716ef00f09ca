package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"chatpolish/internal/logging"

	"google.golang.org/genai"
)

const geminiRateLimitDelay = 100 * time.Millisecond

// Gemini is a Provider backed by the Google Gemini API.
type Gemini struct {
	id      string
	client  *genai.Client
	model   string
	timeout time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// GeminiConfig configures a Gemini provider.
type GeminiConfig struct {
	ID      string // registry id; defaults to "gemini"
	APIKey  string
	Model   string // defaults to gemini-2.5-flash
	Timeout time.Duration
}

// NewGemini creates a Gemini provider.
func NewGemini(cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.ID == "" {
		cfg.ID = "gemini"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		id:      cfg.ID,
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// ID returns the registry id.
func (g *Gemini) ID() string {
	return g.id
}

// CompleteWithSystem sends a prompt with a system instruction and
// returns the completion text.
func (g *Gemini) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	// Auto-apply timeout if the context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// Minimum spacing between consecutive API calls.
	g.mu.Lock()
	elapsed := time.Since(g.lastRequest)
	if elapsed < geminiRateLimitDelay {
		time.Sleep(geminiRateLimitDelay - elapsed)
	}
	g.lastRequest = time.Now()
	g.mu.Unlock()

	startTime := time.Now()
	logging.ProviderDebug("[Gemini] CompleteWithSystem: model=%s system_len=%d user_len=%d",
		g.model, len(systemPrompt), len(userPrompt))

	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		logging.ProviderError("[Gemini] CompleteWithSystem: request failed after %v: %v", time.Since(startTime), err)
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		logging.ProviderWarn("[Gemini] CompleteWithSystem: empty completion after %v", time.Since(startTime))
		return "", ErrEmptyCompletion
	}

	logging.Provider("[Gemini] CompleteWithSystem: completed in %v response_len=%d",
		time.Since(startTime), len(text))
	return text, nil
}
