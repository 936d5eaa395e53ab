package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/reading-copilot/internal/adapter/cache"
	"github.com/heartmarshall/reading-copilot/internal/adapter/postgres"
	sentencerepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/sentence"
	textrepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/text"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/openai"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/pdf"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/webpage"
	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/auth"
	"github.com/heartmarshall/reading-copilot/internal/config"
	"github.com/heartmarshall/reading-copilot/internal/observe"
	"github.com/heartmarshall/reading-copilot/internal/resilience"
	"github.com/heartmarshall/reading-copilot/internal/service/analysis"
	"github.com/heartmarshall/reading-copilot/internal/service/reading"
	"github.com/heartmarshall/reading-copilot/internal/transport/middleware"
	"github.com/heartmarshall/reading-copilot/internal/transport/rest"
)

const accessTokenTTL = 15 * time.Minute

// Run is the application entry point. It loads configuration, connects the
// database and optional collaborators, serves HTTP until ctx is cancelled and
// then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// Database.
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := migrateUp(ctx, pool, logger); err != nil {
			return err
		}
	}

	// Metrics.
	var met *observe.Metrics
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		prov, err := observe.InitProvider(AppName, Version)
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = prov.Shutdown(shutdownCtx)
		}()
		met = prov.Metrics
		metricsHandler = prov.Handler
	}

	// Repositories and collaborators.
	texts := textrepo.New(pool)
	sentences := sentencerepo.New(pool)

	readingService := newReadingService(logger, cfg, pool, texts, sentences, met)

	health := rest.NewHealthHandler(pool, Version)

	var analysisCache *cache.AnalysisCache
	if cfg.Cache.Enabled() {
		analysisCache, err = cache.New(ctx, cfg.Cache, logger)
		if err != nil {
			logger.Warn("analysis cache unavailable, continuing without it", slog.String("error", err.Error()))
			analysisCache = nil
		} else {
			defer analysisCache.Close()
			health.WithCache(analysisCache)
		}
	}

	limiter := ai.NewLimiter(cfg.Analysis.RateLimitMax, cfg.Analysis.RateLimitWindow, time.Minute)
	defer limiter.Stop()

	aiHandler := rest.NewAIHandler(nil, logger)
	if cfg.LLM.Enabled() {
		provider, err := NewLLMProvider(cfg, logger, met)
		if err != nil {
			return err
		}
		health.WithLLM(provider)

		deps := analysis.Deps{
			AI:        provider,
			Texts:     texts,
			Sentences: sentences,
			Limiter:   limiter,
		}
		if analysisCache != nil {
			deps.Cache = analysisCache
		}
		if met != nil {
			deps.Metrics = met
		}
		analysisService := analysis.NewService(logger, deps, cfg.Analysis.BatchConcurrency)
		aiHandler = rest.NewAIHandler(analysisService, logger)
	} else {
		logger.Warn("llm api key not set, analysis and chat are disabled")
	}

	// HTTP.
	mux := NewRouter(Handlers{
		Health:      health,
		Reading:     rest.NewReadingHandler(readingService, logger),
		AI:          aiHandler,
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	var devUser uuid.UUID
	if !cfg.Auth.Required {
		devUser = uuid.MustParse(cfg.Auth.DevUserID)
		logger.Warn("authentication not required, anonymous requests act as the dev user",
			slog.String("dev_user_id", devUser.String()))
	}
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, accessTokenTTL)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager, devUser, logger),
		rateLimiter.Limit(cfg.Server.RateLimit),
		maxBody(cfg.Server.MaxBodyBytes, uploadLimits(cfg)),
		middleware.Metrics(met),
	)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", slog.Int("count", len(applied)))
	return nil
}

func newReadingService(
	logger *slog.Logger,
	cfg *config.Config,
	pool *pgxpool.Pool,
	texts *textrepo.Repo,
	sentences *sentencerepo.Repo,
	met *observe.Metrics,
) *reading.Service {
	fetcher := webpage.New(cfg.Reader.ImportTimeout, cfg.Reader.ImportMaxBytes)
	defaults := reading.DefaultsFromConfig(cfg.Reader)
	txm := postgres.NewTxManager(pool)

	var svc *reading.Service
	if met == nil {
		svc = reading.NewService(logger, texts, sentences, txm, fetcher, nil, defaults)
	} else {
		svc = reading.NewService(logger, texts, sentences, txm, fetcher, met, defaults)
	}
	return svc.WithPDF(pdf.New(cfg.Reader.PDFMaxBytes))
}

// NewLLMProvider builds the AI collaborator guarded by the configured breaker.
// met may be nil.
func NewLLMProvider(cfg *config.Config, logger *slog.Logger, met *observe.Metrics) (*openai.Provider, error) {
	breaker := resilience.BreakerConfig{
		Name:         "llm",
		MaxFailures:  cfg.Analysis.BreakerMaxFailures,
		ResetTimeout: cfg.Analysis.BreakerResetTimeout,
	}
	if met != nil {
		breaker.OnStateChange = func(name string, _, to resilience.State) {
			met.RecordBreakerTransition(context.Background(), name, to.String())
		}
	}

	provider, err := openai.New(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Timeout:     cfg.LLM.Timeout,
		Temperature: cfg.LLM.Temperature,
		MaxRetries:  1,
		Breaker:     breaker,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	return provider, nil
}

// multipartOverhead covers the form framing around an uploaded file.
const multipartOverhead = 1 << 20

// maxBody caps request bodies. routes overrides the limit for exact
// "METHOD /path" keys. Streaming responses are unaffected.
func maxBody(limit int64, routes map[string]int64) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		if limit <= 0 && len(routes) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := limit
			if override, ok := routes[r.Method+" "+r.URL.Path]; ok {
				n = override
			}
			if n > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// uploadLimits returns the body limits of the upload routes.
func uploadLimits(cfg *config.Config) map[string]int64 {
	pdfLimit := cfg.Reader.PDFMaxBytes
	if pdfLimit <= 0 {
		pdfLimit = pdf.DefaultMaxBytes
	}
	return map[string]int64{
		"POST " + pdfImportPath: pdfLimit + multipartOverhead,
	}
}
