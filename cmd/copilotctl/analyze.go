package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/reading-copilot/internal/adapter/cache"
	sentencerepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/sentence"
	textrepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/text"
	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/app"
	"github.com/heartmarshall/reading-copilot/internal/service/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		textID int64
		user   string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run AI analysis over every unanalyzed sentence of a text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := asUser(cmd.Context(), user)
			if err != nil {
				return err
			}

			b, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer b.Close()

			if !b.cfg.LLM.Enabled() {
				return errors.New("LLM_API_KEY is not set")
			}
			provider, err := app.NewLLMProvider(b.cfg, b.log, nil)
			if err != nil {
				return err
			}

			limiter := ai.NewLimiter(b.cfg.Analysis.RateLimitMax, b.cfg.Analysis.RateLimitWindow, time.Minute)
			defer limiter.Stop()

			deps := analysis.Deps{
				AI:        provider,
				Texts:     textrepo.New(b.pool),
				Sentences: sentencerepo.New(b.pool),
				Limiter:   limiter,
			}
			if b.cfg.Cache.Enabled() {
				c, err := cache.New(ctx, b.cfg.Cache, b.log)
				if err != nil {
					b.log.Warn("analysis cache unavailable", slog.String("error", err.Error()))
				} else {
					defer c.Close()
					deps.Cache = c
				}
			}

			svc := analysis.NewService(b.log, deps, b.cfg.Analysis.BatchConcurrency)
			res, err := svc.AnalyzeText(ctx, textID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"total=%d skipped=%d analyzed=%d cached=%d failed=%d pending=%d\n",
				res.Total, res.Skipped, res.Analyzed, res.Cached, res.Failed, res.Pending)
			if res.RateLimited {
				fmt.Fprintf(cmd.OutOrStdout(), "rate limited, retry in %s\n", res.RetryAfter.Round(time.Second))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&textID, "text", 0, "text id")
	cmd.Flags().StringVar(&user, "user", "", "owner user id")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
