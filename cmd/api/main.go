package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"summary-service/internal/common/pagination"
	"summary-service/internal/config"
	hhttp "summary-service/internal/handler/http"
	"summary-service/internal/handler/http/auth"
	"summary-service/internal/handler/http/middleware"
	"summary-service/internal/handler/http/pathutil"
	"summary-service/internal/handler/http/requestid"
	hsummary "summary-service/internal/handler/http/summary"
	"summary-service/internal/infra/adapter/persistence"
	"summary-service/internal/infra/db"
	"summary-service/internal/infra/fetcher"
	"summary-service/internal/infra/summarizer"
	"summary-service/internal/infra/worker"
	"summary-service/internal/observability/logging"
	"summary-service/internal/observability/tracing"
	"summary-service/internal/repository"
	"summary-service/internal/resilience/circuitbreaker"
	"summary-service/internal/summarize"
	sumUC "summary-service/internal/usecase/summary"

	_ "summary-service/docs" // swagger docs
)

// @title           Summary Service API
// @version         1.0
// @description     テキストと記事 URL の抽出型要約を提供する REST API
// @description     要約履歴の保存・一覧・ダッシュボード集計も提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 任意。"Bearer {token}" 形式の JWT を渡すと sub クレームがユーザーとして使われます。

func main() {
	_ = godotenv.Load()
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// components holds everything the server needs to run and to shut down.
type components struct {
	handler   http.Handler
	svc       *sumUC.Service
	database  *sql.DB
	scheduler *worker.Scheduler
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	sumCfg, err := config.LoadSummarizerConfig(os.Getenv("SUMMARY_CONFIG_FILE"))
	if err != nil {
		return err
	}
	version := getVersion()

	shutdownTracing, err := tracing.Setup(tracing.Config{
		ServiceName:    "summary-api",
		ServiceVersion: version,
		SampleRatio:    cfg.TraceSampleRatio,
	}, logger)
	if err != nil {
		return err
	}

	comps, err := setup(ctx, logger, cfg, sumCfg, version)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           comps.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr), slog.String("version", version))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return shutdown(shutdownCtx, logger, srv, comps, shutdownTracing)
}

// shutdown stops accepting requests, then drains background writes and
// closes the stores. Every step runs even when an earlier one fails.
func shutdown(ctx context.Context, logger *slog.Logger, srv *http.Server, c *components, stopTracing func(context.Context) error) error {
	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if c.scheduler != nil {
		if err := c.scheduler.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.svc.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := stopTracing(ctx); err != nil {
		errs = append(errs, err)
	}
	if c.database != nil {
		if err := c.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func setup(ctx context.Context, logger *slog.Logger, cfg *config.ServerConfig, sumCfg *config.SummarizerConfig, version string) (*components, error) {
	if err := summarize.InitStopwords(sumCfg.StopwordsFile); err != nil {
		logger.Warn("stopword list unavailable, summarizing without stopword filtering",
			slog.String("path", sumCfg.StopwordsFile),
			slog.Any("error", err))
	}

	neural, err := summarizer.New(sumCfg.SummarizerProviderConfig())
	if err != nil {
		return nil, err
	}
	engine := summarize.NewEngine(sumCfg.EngineOptions(), neural)
	logger.Info("summarization engine ready",
		slog.String("neural_provider", sumCfg.Neural.Provider),
		slog.Int("cache_size", sumCfg.CacheSize))

	comps := &components{}
	var repo repository.SummaryRepository
	if cfg.DatabaseURL != "" {
		conn, dialect, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(ctx, conn, dialect); err != nil {
			_ = conn.Close()
			return nil, err
		}
		repo, err = persistence.NewSummaryRepo(conn, dialect)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		comps.database = conn
		logger.Info("summary store ready", slog.String("dialect", string(dialect)))
	} else {
		logger.Warn("DATABASE_URL is not set; summary history is disabled")
	}

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	articleFetcher := fetcher.NewReadabilityFetcher(fetchCfg)

	svc := sumUC.NewService(repo, engine,
		sumUC.WithFetcher(articleFetcher),
		sumUC.WithTextExtractor(fetcher.HTMLExtractor{}),
		sumUC.WithCacheSize(sumCfg.CacheSize),
		sumUC.WithPersistTimeout(cfg.PersistTimeout),
		sumUC.WithMaxContentBytes(int(cfg.MaxBodyBytes)),
	)
	comps.svc = svc

	if repo != nil && cfg.RetentionDays > 0 {
		wcfg := worker.DefaultConfig()
		wcfg.Schedule = cfg.RetentionSchedule
		wcfg.RetentionDays = cfg.RetentionDays
		if err := wcfg.Validate(); err != nil {
			return nil, err
		}
		sched, err := worker.NewScheduler(worker.NewRetentionJob(svc, wcfg, worker.NewMetrics(), logger), wcfg)
		if err != nil {
			return nil, err
		}
		sched.Start()
		comps.scheduler = sched
		logger.Info("retention scheduler started",
			slog.Int("retention_days", cfg.RetentionDays),
			slog.Time("next_run", sched.Next()))
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, config.GetEnvBool("TRUST_PROXY", false))

	breakers := []*circuitbreaker.CircuitBreaker{articleFetcher.Breaker(), svc.StoreBreaker()}
	if b, ok := neural.(interface {
		Breaker() *circuitbreaker.CircuitBreaker
	}); ok {
		breakers = append(breakers, b.Breaker())
	}

	mux := http.NewServeMux()
	hsummary.Register(mux, svc, pagination.LoadFromEnv(), limiter.Middleware, logger)
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:       comps.database,
		Version:  version,
		Breakers: breakers,
		Limiter:  limiter,
	})
	mux.HandleFunc("/api/health", hhttp.APIHealth)
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	routes := pathutil.NewRoutes(slices.Concat(hsummary.Routes, []string{"/health", "/api/health", "/metrics"})...)

	comps.handler = hhttp.Chain(mux,
		middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins)),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.ContextLogger(logger),
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequest(cfg.MaxBodyBytes),
		hhttp.Timeout(cfg.RequestTimeout),
		hhttp.MetricsMiddleware(routes),
		auth.Identity([]byte(cfg.JWTSecret)),
	)
	return comps, nil
}
