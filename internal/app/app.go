package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ASchaffer8770/nhl-tracker/external/nhle"
	"github.com/ASchaffer8770/nhl-tracker/internal/config"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
	"github.com/ASchaffer8770/nhl-tracker/internal/infrastructure/account/anubis"
	"github.com/ASchaffer8770/nhl-tracker/internal/infrastructure/repository/memory"
	"github.com/ASchaffer8770/nhl-tracker/internal/infrastructure/repository/postgres"
	"github.com/ASchaffer8770/nhl-tracker/internal/interfaces/httpapi"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/cache"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/resilience"
	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

const (
	cacheKeyPrefix  = "nhl-tracker:"
	dependencyProbe = 5 * time.Second
)

// CloseFunc releases resources opened while building the server.
type CloseFunc func() error

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, CloseFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []CloseFunc
	closeAll := func() error {
		var first error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	prefRepo, closeRepo, err := newPreferenceRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if closeRepo != nil {
		closers = append(closers, closeRepo)
	}

	standingsCache, bracketCache, closeCache, err := newSnapshotCaches(ctx, cfg, logger)
	if err != nil {
		_ = closeAll()
		return nil, nil, err
	}
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	nhlClient := nhle.NewClient(nhle.ClientConfig{
		BaseURL:    cfg.NHLAPIBaseURL,
		Timeout:    cfg.NHLAPITimeout,
		MaxRetries: cfg.NHLAPIMaxRetries,
		UserAgent:  cfg.NHLUserAgent,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenMaxReq,
		},
	})

	teamSvc := usecase.NewTeamService(nhlClient, standingsCache, logger)
	bracketSvc := usecase.NewBracketService(nhlClient, bracketCache, usecase.BracketConfig{
		Season:  cfg.NHLSeason,
		Letters: cfg.NHLSeriesLetters,
		Workers: cfg.NHLSeriesFetchWorkers,
	}, logger)
	liveSvc := usecase.NewLiveGameService(nhlClient, logger)
	dashboardSvc := usecase.NewDashboardService(prefRepo, teamSvc, bracketSvc, liveSvc, usecase.DashboardConfig{
		LogoBaseURL: cfg.NHLLogoBaseURL,
	}, logger)
	preferenceSvc := usecase.NewPreferenceService(prefRepo, teamSvc, logger)
	gameSvc := usecase.NewGameService(nhlClient, bracketSvc, logger)

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		BaseURL:           cfg.AnubisBaseURL,
		IntrospectPath:    cfg.AnubisIntrospectURL,
		AdminKey:          cfg.AnubisAdminKey,
		Timeout:           cfg.AnubisTimeout,
		PrincipalCacheTTL: cfg.AnubisPrincipalCacheTTL,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(teamSvc, preferenceSvc, dashboardSvc, gameSvc, cfg.AuthLoginURL, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LoginURL:           cfg.AuthLoginURL,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeAll, nil
}

func newPreferenceRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (preference.Repository, CloseFunc, error) {
	if !cfg.DBEnabled {
		logger.Warn("database disabled, preferences are kept in memory", "reason", "DB_ENABLED=false")
		return memory.NewPreferenceRepository(), nil, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL))

	return postgres.NewPreferenceRepository(db), db.Close, nil
}

// newSnapshotCaches returns untyped nil caches when caching is disabled so the
// services always fetch.
func newSnapshotCaches(
	ctx context.Context,
	cfg config.Config,
	logger *logging.Logger,
) (usecase.SnapshotCache[[]team.Team], usecase.SnapshotCache[usecase.BracketSnapshot], CloseFunc, error) {
	if !cfg.BracketCacheEnabled {
		logger.Info("snapshot cache disabled", "reason", "BRACKET_CACHE_ENABLED=false")
		return nil, nil, nil, nil
	}

	if cfg.RedisURL == "" {
		return cache.NewStore[[]team.Team](cfg.BracketCacheTTL),
			cache.NewStore[usecase.BracketSnapshot](cfg.BracketCacheTTL),
			nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, dependencyProbe)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("snapshot cache backed by redis", "addr", opts.Addr, "ttl", cfg.BracketCacheTTL)

	return cache.NewRedisStore[[]team.Team](client, cacheKeyPrefix, cfg.BracketCacheTTL, logger),
		cache.NewRedisStore[usecase.BracketSnapshot](client, cacheKeyPrefix, cfg.BracketCacheTTL, logger),
		client.Close, nil
}
