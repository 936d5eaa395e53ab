// Package openai reaches the analysis collaborator through an
// OpenAI-compatible chat completions API (DashScope, Gemini, OpenAI).
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/shared"

	"github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/resilience"
)

// ErrEmptyResponse is returned when the provider answers without choices.
var ErrEmptyResponse = errors.New("openai: empty choices in response")

// Config holds the connection settings of the provider. Timeout bounds one
// Complete call; a stream lives as long as the caller's context.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxRetries  int
	Breaker     resilience.BreakerConfig
}

// Provider implements completion and streaming completion on openai-go,
// guarded by a circuit breaker.
type Provider struct {
	client      oai.Client
	model       string
	temperature float64
	timeout     time.Duration
	breaker     *resilience.Breaker
	log         *slog.Logger
}

// New constructs a Provider.
func New(cfg Config, log *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key must not be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(max(cfg.MaxRetries, 0)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker.Name = "llm"
	}

	return &Provider{
		client:      oai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		breaker:     resilience.NewBreaker(log, cfg.Breaker),
		log:         log.With("provider", "openai", "model", cfg.Model),
	}, nil
}

// Model returns the configured model name.
func (p *Provider) Model() string { return p.model }

// BreakerState reports the state of the guarding circuit breaker.
func (p *Provider) BreakerState() resilience.State { return p.breaker.State() }

// Complete sends a system and a user message and returns the answer text.
func (p *Provider) Complete(ctx context.Context, system, user string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var content string
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		start := time.Now()
		resp, err := p.client.Chat.Completions.New(ctx, p.params(system, user))
		if err != nil {
			return fmt.Errorf("openai: chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return ErrEmptyResponse
		}
		content = resp.Choices[0].Message.Content
		p.log.DebugContext(ctx, "completion finished",
			slog.Duration("duration", time.Since(start)),
			slog.Int64("total_tokens", resp.Usage.TotalTokens))
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

// Stream starts a streaming completion. The breaker judges only the start of
// the stream; failures after the first byte are delivered as a final Chunk.
// The channel closes when the stream ends or ctx is cancelled.
func (p *Provider) Stream(ctx context.Context, system, user string) (<-chan analysis.Chunk, error) {
	var stream *ssestream.Stream[oai.ChatCompletionChunk]

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		s := p.client.Chat.Completions.NewStreaming(ctx, p.params(system, user))
		if err := s.Err(); err != nil {
			s.Close()
			return fmt.Errorf("openai: start stream: %w", err)
		}
		stream = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	ch := make(chan analysis.Chunk, 32)
	go func() {
		defer close(ch)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			select {
			case ch <- analysis.Chunk{Text: chunk.Choices[0].Delta.Content}:
			case <-ctx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil && ctx.Err() == nil {
			select {
			case ch <- analysis.Chunk{Err: fmt.Errorf("openai: stream: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return ch, nil
}

func (p *Provider) params(system, user string) oai.ChatCompletionNewParams {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(system),
			oai.UserMessage(user),
		},
	}
	if p.temperature != 0 {
		params.Temperature = param.NewOpt(p.temperature)
	}
	return params
}
