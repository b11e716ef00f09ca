package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chatpolish/internal/config"
	"chatpolish/internal/logging"
	"chatpolish/internal/marker"
	"chatpolish/internal/message"
	"chatpolish/internal/polish"
	"chatpolish/internal/provider"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chatpolish",
	Short: "chatpolish - polish conversational replies before delivery",
	Long: `chatpolish rewrites the plain-text segments of conversational replies
through an LLM provider before they are sent, while command replies and
non-text segments (images, mentions, audio) pass through untouched.

The polish command drives the full hook pipeline against a real provider:
pass text as arguments for a one-shot polish, or pipe lines on stdin to
polish each line as its own conversational turn.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

var polishCmd = &cobra.Command{
	Use:   "polish [text...]",
	Short: "Polish text through the full hook pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := logging.Initialize(cfg.Logging.Dir, logging.Options{
			DebugMode: cfg.Logging.DebugMode,
			Level:     cfg.Logging.Level,
		}); err != nil {
			return err
		}

		if cfg.Provider.APIKey == "" {
			return fmt.Errorf("no API key configured (set GEMINI_API_KEY or provider.api_key)")
		}

		registry := provider.NewRegistry()
		gemini, err := provider.NewGemini(provider.GeminiConfig{
			APIKey:  cfg.Provider.APIKey,
			Model:   cfg.Provider.Model,
			Timeout: cfg.GetPolishTimeout(),
		})
		if err != nil {
			return err
		}
		registry.Register(gemini)

		store := marker.NewStore()
		polisher := polish.New(store, registry, polish.OptionsFromConfig(cfg))

		reaper := marker.NewReaper(store, cfg.GetMarkRetention(), cfg.GetMarkCheckInterval())
		reaper.Start()
		defer reaper.Stop()

		// Pick up prompt and policy edits while the loop runs.
		watcher, err := config.NewWatcher(configPath, func(next *config.Config) {
			polisher.SetOptions(polish.OptionsFromConfig(next))
			logger.Info("config reloaded", zap.String("path", configPath))
		})
		if err == nil {
			if werr := watcher.Start(); werr != nil {
				logger.Debug("config watcher unavailable", zap.Error(werr))
			} else {
				defer watcher.Stop()
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if len(args) > 0 {
			out := runTurn(ctx, polisher, strings.Join(args, " "))
			fmt.Println(out)
			return nil
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return runLoop(ctx, polisher)
		})
		return g.Wait()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chatpolish version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chatpolish %s\n", version)
	},
}

// runTurn pushes one line of text through the three hooks as a single
// conversational turn and returns the polished text.
func runTurn(ctx context.Context, polisher *polish.Polisher, text string) string {
	turn := polish.Turn{
		ID:     uuid.NewString(),
		Origin: "cli:local",
	}
	polisher.OnRequestStart(turn)
	chain := message.Chain{message.Plain(text)}
	out := polisher.OnDecoratingResult(ctx, turn, chain)
	polisher.OnAfterSent(turn)
	return out.PlainText()
}

// runLoop polishes stdin line by line until EOF or cancellation.
func runLoop(ctx context.Context, polisher *polish.Polisher) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fmt.Println(runTurn(ctx, polisher, line))
	}
	return scanner.Err()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "chatpolish.yaml", "path to config file")
	rootCmd.AddCommand(polishCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
