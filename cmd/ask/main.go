package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/bootstrap"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/config"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/queue/nats"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/report/xlsx"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/observability/logging"
)

const defaultQuestion = "What is the deductible for Molina Silver 1 HMO 2025 in Florida?"

type options struct {
	question   string
	reportPath string
	asJSON     bool
	viaNATS    bool
	timeout    time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "ask",
		Short:        "Answer an insurance benefits question from the insurer's plan PDFs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.question, "question", "q", defaultQuestion, "question to answer")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "write the ranking table to this .xlsx file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full pipeline result as JSON")
	cmd.Flags().BoolVar(&opts.viaNATS, "nats", false, "send the question to a worker over NATS instead of running locally")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline")
	return cmd
}

func run(parent context.Context, out io.Writer, opts options) error {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, "ask", cfg.LogLevel))

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	result, err := answer(ctx, cfg, opts)
	if err != nil {
		return err
	}

	if opts.reportPath != "" {
		if err := xlsx.Write(opts.reportPath, result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		slog.Info("report_written", "path", opts.reportPath)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return render(out, result)
}

func answer(ctx context.Context, cfg config.Config, opts options) (*domain.PipelineResult, error) {
	if opts.viaNATS {
		queue, err := nats.New(cfg.NATSURL, cfg.AskSubject)
		if err != nil {
			return nil, err
		}
		defer queue.Close()
		return queue.Ask(ctx, opts.question)
	}

	app, err := bootstrap.New(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	defer app.Close()
	return app.Pipeline.Run(ctx, opts.question)
}

func render(out io.Writer, result *domain.PipelineResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", result.Question)
	if result.Query != "" {
		fmt.Fprintf(&b, "Query:    %s\n", result.Query)
	}
	fmt.Fprintf(&b, "State:    %s\n", result.State)

	if len(result.Ranked) > 0 {
		b.WriteString("\nRanked documents:\n")
		for i, rc := range result.Ranked {
			fmt.Fprintf(&b, "%2d. hybrid=%.4f bm25=%.4f meta=%.4f content=%.4f %s\n",
				i+1,
				rc.Scores.Hybrid,
				rc.Scores.BM25,
				rc.Scores.SemMeta,
				rc.Scores.SemContent,
				rc.Candidate.URL,
			)
		}
	}

	b.WriteString("\nAnswer:\n")
	b.WriteString(strings.TrimSpace(result.Answer))
	b.WriteString("\n")
	if result.AnswerError != "" {
		fmt.Fprintf(&b, "(synthesis error: %s)\n", result.AnswerError)
	}

	if len(result.Sources) > 0 {
		b.WriteString("\nSources:\n")
		for _, src := range result.Sources {
			fmt.Fprintf(&b, "- %s\n", src)
		}
	}

	_, err := io.WriteString(out, b.String())
	return err
}
