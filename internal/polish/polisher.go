// Package polish rewrites the plain-text segments of outgoing
// conversational replies through an LLM provider before delivery.
//
// The pipeline's request-start and result-decorating hooks are not
// invoked as a synchronous pair, so the package keeps a marker store to
// correlate them: a reply is polished only when its turn was marked by
// the conversational flow. Command replies never mark a turn and pass
// through structurally, without any content inspection.
package polish

import (
	"context"
	"strings"
	"sync"
	"time"

	"chatpolish/internal/config"
	"chatpolish/internal/logging"
	"chatpolish/internal/marker"
	"chatpolish/internal/message"
	"chatpolish/internal/provider"
)

// Turn identifies one conversational exchange: ID is unique per
// exchange within the process lifetime, Origin identifies the
// conversation the exchange belongs to (used for provider resolution).
type Turn struct {
	ID     string
	Origin string
}

// Options is the snapshot of config the rewrite path reads. Kept as a
// value so a hot reload swaps it atomically under the options lock and
// an in-flight rewrite keeps the snapshot it started with.
type Options struct {
	ProviderID     string
	Prompt         string
	Timeout        time.Duration
	FailureMode    string
	FailureMessage string
}

// OptionsFromConfig derives rewrite options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ProviderID:     cfg.Polish.Provider,
		Prompt:         cfg.Polish.Prompt,
		Timeout:        cfg.GetPolishTimeout(),
		FailureMode:    cfg.Failure.Mode,
		FailureMessage: cfg.Failure.Message,
	}
}

// Polisher owns the gate and the rewriter. One instance serves all
// conversations; every method is safe for concurrent use.
type Polisher struct {
	store     *marker.Store
	providers *provider.Registry

	optsMu sync.RWMutex
	opts   Options
}

// New creates a Polisher over the given marker store and provider
// registry.
func New(store *marker.Store, providers *provider.Registry, opts Options) *Polisher {
	return &Polisher{
		store:     store,
		providers: providers,
		opts:      opts,
	}
}

// SetOptions replaces the rewrite options. Wired to the config watcher
// so prompt and policy edits take effect without a restart.
func (p *Polisher) SetOptions(opts Options) {
	p.optsMu.Lock()
	p.opts = opts
	p.optsMu.Unlock()
}

func (p *Polisher) options() Options {
	p.optsMu.RLock()
	defer p.optsMu.RUnlock()
	return p.opts
}

// OnRequestStart marks the turn as conversational. Called by the host
// when a request enters the conversational flow; command handlers never
// call it. A duplicate call refreshes the mark's timestamp.
func (p *Polisher) OnRequestStart(turn Turn) {
	p.store.Insert(turn.ID)
	logging.HooksDebug("Request start: marked turn=%s origin=%s", turn.ID, turn.Origin)
}

// OnDecoratingResult is the send-time hook. If the turn carries a mark
// it is consumed and the chain's text is rewritten; otherwise the chain
// is returned untouched. The returned chain is always deliverable:
// every failure inside resolves to a message per the failure policy.
func (p *Polisher) OnDecoratingResult(ctx context.Context, turn Turn, chain message.Chain) message.Chain {
	if !p.ShouldPolish(turn.ID) {
		logging.HooksDebug("Decorating: no mark for turn=%s, passing through", turn.ID)
		return chain
	}
	return p.Rewrite(ctx, turn.Origin, chain)
}

// OnAfterSent releases any mark left for the turn. Idempotent: the
// usual case is that OnDecoratingResult already consumed it.
func (p *Polisher) OnAfterSent(turn Turn) {
	p.store.Discard(turn.ID)
	logging.HooksDebug("After sent: discarded mark for turn=%s", turn.ID)
}

// ShouldPolish consumes the turn's mark and reports whether it was
// present. Consumption is the sole routing signal; message content
// plays no part in the decision.
func (p *Polisher) ShouldPolish(turnID string) bool {
	return p.store.Consume(turnID)
}

// Rewrite polishes the chain's plain text and reassembles the message.
// Non-text segments pass through verbatim in their original positions.
// No lock is held across the provider call.
func (p *Polisher) Rewrite(ctx context.Context, origin string, chain message.Chain) message.Chain {
	opts := p.options()

	text := chain.PlainText()
	if strings.TrimSpace(text) == "" {
		logging.PolishDebug("No plain text to polish, skipping provider call")
		return chain
	}

	prov := p.providers.Resolve(opts.ProviderID, origin)
	if prov == nil {
		logging.PolishWarn("No provider available for origin=%s, applying failure policy", origin)
		return p.applyFailurePolicy(opts, chain)
	}

	polished, err := p.callProvider(ctx, prov, opts, text)
	if err != nil {
		logging.PolishError("Polish failed via %s: %v", prov.ID(), err)
		return p.applyFailurePolicy(opts, chain)
	}

	logging.Polish("Polished %d chars -> %d chars via %s", len(text), len(polished), prov.ID())
	return chain.ReplacePlainText(polished)
}

type completion struct {
	text string
	err  error
}

// callProvider runs the completion under the configured timeout. The
// call is abandoned at the deadline even if the provider ignores ctx;
// its late result is discarded via the buffered channel.
func (p *Polisher) callProvider(ctx context.Context, prov provider.Provider, opts Options, text string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	userPrompt := buildUserPrompt(opts.Prompt, text)

	ch := make(chan completion, 1)
	go func() {
		out, err := prov.CompleteWithSystem(callCtx, systemPrompt, userPrompt)
		ch <- completion{text: out, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		// An empty rewrite of non-empty text is a failure, not a
		// license to send an empty reply.
		if strings.TrimSpace(res.text) == "" {
			return "", provider.ErrEmptyCompletion
		}
		return strings.TrimSpace(res.text), nil
	case <-callCtx.Done():
		return "", callCtx.Err()
	}
}

// applyFailurePolicy resolves a failed rewrite to a deliverable chain.
func (p *Polisher) applyFailurePolicy(opts Options, chain message.Chain) message.Chain {
	if opts.FailureMode == config.FailureModeSendFailureMessage {
		return chain.ReplacePlainText(opts.FailureMessage)
	}
	return chain
}
