package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/domain"
	"github.com/set-night/docqa/internal/llm"
	"github.com/set-night/docqa/internal/service"
	"github.com/spf13/cobra"
)

var (
	documentPath string
	modelName    string
	showUsage    bool
)

var rootCmd = &cobra.Command{
	Use:   "ask --file <document> <question> [question...]",
	Short: "Ask questions about a text document",
	Long: `Ask loads a .txt, .md, .json or .csv document and asks the configured
model each question in turn, printing the answers. Questions share one chat
session, exactly as they would in the bot.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})))

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if modelName != "" {
			cfg.Model = modelName
		}
		if cmd.Flags().Changed("usage") {
			cfg.ShowUsage = showUsage
		}

		completer, err := llm.New(cfg)
		if err != nil {
			return fmt.Errorf("create model client: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pricing := service.NewPricing(cfg.PromptPricePerM, cfg.CompletionPricePerM)
		if cfg.ShowUsage && cfg.Provider == config.ProviderOpenRouter {
			pricing = service.ResolvePricing(ctx, llm.NewCatalog(cfg.APIKey, cfg.BaseURL), cfg.Model, pricing)
		}

		data, err := readDocument(documentPath)
		if err != nil {
			return err
		}

		session := askSession{
			uploads:    service.NewUploadService(cfg.MaxDocumentChars),
			transcript: service.NewTranscript(service.NewAnswerService(completer, cfg.Model, cfg.AnswerTimeout)),
			pricing:    pricing,
			showUsage:  cfg.ShowUsage,
			out:        cmd.OutOrStdout(),
			errOut:     cmd.ErrOrStderr(),
		}
		return session.run(ctx, filepath.Base(documentPath), data, args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&documentPath, "file", "f", "", "Document to ask about (.txt, .md, .json, .csv)")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", "", "Override LLM_MODEL")
	rootCmd.Flags().BoolVar(&showUsage, "usage", false, "Print token usage after each answer")
	_ = rootCmd.MarkFlagRequired("file")
}

func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileRead, err)
	}
	return data, nil
}

// askSession runs a list of questions against one freshly uploaded document.
type askSession struct {
	uploads    *service.UploadService
	transcript *service.Transcript
	pricing    service.Pricing
	showUsage  bool
	out        io.Writer
	errOut     io.Writer
}

var errAnswerFailed = errors.New("one or more questions could not be answered")

func (s askSession) run(ctx context.Context, fileName string, data []byte, questions []string) error {
	store := service.NewSessionStore(service.NewIDSource())
	session, err := s.uploads.Accept(store, fileName, data)
	if err != nil {
		return err
	}
	if seed, ok := session.LastMessage(); ok {
		fmt.Fprintln(s.out, seed.Text)
	}

	failed := false
	for _, question := range questions {
		outcome, err := s.transcript.Submit(ctx, store, question)
		if errors.Is(err, domain.ErrEmptyQuestion) {
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(s.out, "\n> %s\n", outcome.Question.Text)
		if outcome.Failed() {
			failed = true
			fmt.Fprintln(s.errOut, outcome.Banner)
			fmt.Fprintln(s.out, outcome.Reply.Text)
			continue
		}
		fmt.Fprintln(s.out, outcome.Reply.Text)
		if s.showUsage {
			fmt.Fprintln(s.errOut, s.pricing.FormatUsage(outcome.Answer))
		}
	}

	if failed {
		return errAnswerFailed
	}
	return nil
}
