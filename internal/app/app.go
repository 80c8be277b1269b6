package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/wifijump/internal/config"
	"github.com/MrSnakeDoc/wifijump/internal/domain"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wifijump/internal/logger"
	"github.com/MrSnakeDoc/wifijump/internal/network"
	"github.com/MrSnakeDoc/wifijump/internal/redis"
	"github.com/MrSnakeDoc/wifijump/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/wifijump/internal/store/redis"
	"github.com/MrSnakeDoc/wifijump/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.NetworkReloader
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional; when configured it must be reachable at startup
	var (
		redisClient *goredis.Client
		store       *redisstore.Store
	)
	if cfg.RedisEnabled() {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		store = redisstore.NewStore(client)
	} else {
		loggerClient.Info("redis not configured, decision stats disabled")
	}

	opts := network.SourceOptions{
		Kind:       cfg.NetworkSource,
		StaticSSID: cfg.StaticSSID,
		FilePath:   cfg.NetworkFile,
	}
	if store != nil {
		opts.Redis = store
	}
	source, err := network.NewSource(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build network source: %w", err)
	}

	snapshot := network.NewSnapshot()
	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewNetworkReloader(
		source,
		snapshot,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		Rule: domain.Rule{
			TargetIdentity:     cfg.TargetSSID,
			RedirectHostPrefix: cfg.RedirectHostPrefix,
		},
		Network:        snapshot,
		NetworkSource:  source.Name(),
		InterceptHosts: cfg.InterceptHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		RateBurst:      cfg.RateBurst,
		RatePerMin:     cfg.RatePerMin,
		ReloadTrigger:  reloadTrigger,
	}
	// Leave Store as a nil interface when redis is off
	if store != nil {
		d.Store = store
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg.ListenPort, d),
		redisClient: redisClient,
		reloader:    reloader,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting wifijump v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("wifijump %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)
	a.logger.Info("redirect rule loaded",
		logger.String("target_ssid", a.cfg.TargetSSID),
		logger.String("redirect_prefix", a.cfg.RedirectHostPrefix),
		logger.String("network_source", a.cfg.NetworkSource))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		a.closeRedis()
		return fmt.Errorf("failed to start network reloader: %w", err)
	}
	a.logger.Info("network reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeRedis()

	if runErr == nil {
		a.logger.Info("✅ wifijump stopped cleanly")
	}
	_ = a.logger.Sync()
	return runErr
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
	} else {
		a.logger.Info("✅ Redis closed cleanly")
	}
}
