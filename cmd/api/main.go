package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	fsrepo "github.com/Aywac/tawzifak1122/internal/infra/adapter/persistence/firestore"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	"github.com/Aywac/tawzifak1122/internal/resilience/circuitbreaker"
	"github.com/Aywac/tawzifak1122/internal/resilience/retry"
	"github.com/Aywac/tawzifak1122/pkg/config"

	artUC "github.com/Aywac/tawzifak1122/internal/usecase/article"
	compUC "github.com/Aywac/tawzifak1122/internal/usecase/competition"
	immUC "github.com/Aywac/tawzifak1122/internal/usecase/immigration"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"
	modUC "github.com/Aywac/tawzifak1122/internal/usecase/moderation"
	statsUC "github.com/Aywac/tawzifak1122/internal/usecase/stats"
	testiUC "github.com/Aywac/tawzifak1122/internal/usecase/testimonial"
	userUC "github.com/Aywac/tawzifak1122/internal/usecase/user"

	apphttp "github.com/Aywac/tawzifak1122/internal/handler/http"
	harticle "github.com/Aywac/tawzifak1122/internal/handler/http/article"
	hcompetition "github.com/Aywac/tawzifak1122/internal/handler/http/competition"
	hfeed "github.com/Aywac/tawzifak1122/internal/handler/http/feed"
	himmigration "github.com/Aywac/tawzifak1122/internal/handler/http/immigration"
	hlisting "github.com/Aywac/tawzifak1122/internal/handler/http/listing"
	hmeta "github.com/Aywac/tawzifak1122/internal/handler/http/meta"
	hmoderation "github.com/Aywac/tawzifak1122/internal/handler/http/moderation"
	"github.com/Aywac/tawzifak1122/internal/handler/http/requestid"
	hstats "github.com/Aywac/tawzifak1122/internal/handler/http/stats"
	htestimonial "github.com/Aywac/tawzifak1122/internal/handler/http/testimonial"
	huser "github.com/Aywac/tawzifak1122/internal/handler/http/user"
)

const maxRequestBody = 1 << 20 // 1 MiB

func main() {
	// A missing .env is fine in production, where the environment comes
	// from the deploy manifest.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if os.Getenv("JWT_SECRET") == "" {
		logger.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	projectID := config.GetEnvString("GOOGLE_CLOUD_PROJECT", "")
	if projectID == "" {
		logger.Error("GOOGLE_CLOUD_PROJECT is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := fsrepo.New(ctx, projectID)
	if err != nil {
		logger.Error("firestore client init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("firestore client close failed", slog.Any("error", err))
		}
	}()

	// Cloud Run may start the container before Firestore is reachable
	// through the VPC connector, so probe with backoff instead of dying
	// on the first refused connection.
	pingCtx, cancel := context.WithTimeout(ctx, time.Minute)
	err = retry.WithBackoff(pingCtx, retry.StartupConfig(), func() error {
		return store.Ping(pingCtx)
	})
	cancel()
	if err != nil {
		logger.Error("firestore not reachable", slog.Any("error", err))
		os.Exit(1)
	}

	readCache := cache.New()
	defer readCache.Stop()

	limits := pagination.LoadFromEnv()
	mux := buildMux(logger, store, readCache, limits)

	srv := &http.Server{
		Addr: ":" + config.GetEnvString("PORT", "8080"),
		Handler: apphttp.Chain(mux,
			requestid.Middleware,
			apphttp.Recover(logger),
			apphttp.Logging(logger),
			apphttp.MetricsMiddleware,
			apphttp.LimitRequestBody(maxRequestBody),
		),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func buildMux(logger *slog.Logger, store *fsrepo.Client, readCache *cache.Tagged, limits pagination.Config) *http.ServeMux {
	// One breaker per collection that the fallback search can scan, so a
	// hot jobs collection tripping does not blind the competitions list.
	adsBreaker := circuitbreaker.New(circuitbreaker.SearchScanConfig("ads-scan"))
	compBreaker := circuitbreaker.New(circuitbreaker.SearchScanConfig("competitions-scan"))
	immBreaker := circuitbreaker.New(circuitbreaker.SearchScanConfig("immigration-scan"))

	listingRepo := fsrepo.NewListingRepo(store)
	competitionRepo := fsrepo.NewCompetitionRepo(store)
	immigrationRepo := fsrepo.NewImmigrationRepo(store)

	listingSvc := &listingUC.Service{
		Repo: listingRepo, Cache: readCache, Breaker: adsBreaker, Limits: limits, Logger: logger,
	}
	competitionSvc := &compUC.Service{
		Repo: competitionRepo, Cache: readCache, Breaker: compBreaker, Limits: limits, Logger: logger,
	}
	immigrationSvc := &immUC.Service{
		Repo: immigrationRepo, Cache: readCache, Breaker: immBreaker, Limits: limits, Logger: logger,
	}
	articleSvc := &artUC.Service{
		Repo: fsrepo.NewArticleRepo(store), Cache: readCache, Limits: limits, Logger: logger,
	}
	testimonialSvc := &testiUC.Service{
		Repo: fsrepo.NewTestimonialRepo(store), Cache: readCache, Limits: limits, Logger: logger,
	}
	statsSvc := &statsUC.Service{
		Repo: fsrepo.NewStatsRepo(store), Cache: readCache, Logger: logger,
	}
	userSvc := &userUC.Service{
		Repo:         fsrepo.NewUserRepo(store),
		Listings:     listingRepo,
		Competitions: competitionRepo,
		Immigration:  immigrationRepo,
		Cache:        readCache,
		Limits:       limits,
		Logger:       logger,
	}
	moderationSvc := &modUC.Service{
		Reports:  fsrepo.NewReportRepo(store),
		Contacts: fsrepo.NewContactRepo(store),
	}

	// Fallback fuzzy search scans whole collections, so search-carrying
	// requests get their own per-IP budget on top of the edge limits.
	searchLimiter := apphttp.NewRateLimiter(
		rate.Limit(config.GetEnvFloat("SEARCH_RATE_LIMIT", 1)),
		config.GetEnvInt("SEARCH_RATE_BURST", 5),
	)

	mux := http.NewServeMux()
	hlisting.Register(mux, listingSvc, searchLimiter, logger)
	hcompetition.Register(mux, competitionSvc, searchLimiter, logger)
	himmigration.Register(mux, immigrationSvc, searchLimiter, logger)
	harticle.Register(mux, articleSvc, logger)
	htestimonial.Register(mux, testimonialSvc, logger)
	hstats.Register(mux, statsSvc)
	huser.Register(mux, userSvc, logger)
	hmoderation.Register(mux, moderationSvc, logger)
	hfeed.Register(mux, articleSvc, config.GetEnvString("PUBLIC_BASE_URL", hfeed.DefaultBaseURL), logger)
	hmeta.Register(mux)

	version := config.GetEnvString("APP_VERSION", "dev")
	health := &apphttp.HealthHandler{Store: store, Version: version}
	mux.Handle("GET    /health", health)
	mux.Handle("GET    /ready", health)
	mux.Handle("GET    /live", apphttp.LiveHandler())
	mux.Handle("GET    /metrics", apphttp.MetricsHandler())

	warmStats(statsSvc)
	return mux
}

// warmStats primes the counters cache and the business gauges so the
// first scrape after boot does not report zeros.
func warmStats(svc *statsUC.Service) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		apphttp.UpdateGlobalStats(svc.Get(ctx))
	}()
}
