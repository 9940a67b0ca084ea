package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/csfinder/internal/bookmarks"
	"github.com/MrSnakeDoc/csfinder/internal/config"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/mw"
	"github.com/MrSnakeDoc/csfinder/internal/index"
	"github.com/MrSnakeDoc/csfinder/internal/logger"
	"github.com/MrSnakeDoc/csfinder/internal/redis"
	"github.com/MrSnakeDoc/csfinder/internal/scheduler"
	"github.com/MrSnakeDoc/csfinder/internal/session"
	"github.com/MrSnakeDoc/csfinder/internal/sources/workbook"
	"github.com/MrSnakeDoc/csfinder/internal/store/file"
	redisstore "github.com/MrSnakeDoc/csfinder/internal/store/redis"
	"github.com/MrSnakeDoc/csfinder/internal/store/sqlite"
	"github.com/MrSnakeDoc/csfinder/internal/utils"
	"github.com/MrSnakeDoc/csfinder/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	server  *httpserver.Server
	sweeper *scheduler.SessionSweeper
	closers map[string]io.Closer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Load the workbook once - fail fast, nothing can be served without it
	schema, err := workbook.LoadSchema(cfg.SchemaFile)
	if err != nil {
		loggerClient.Errorf("Failed to load collection schema: %v", err)
		os.Exit(1)
	}
	records := index.NewRecordStore(workbook.NewLoader(cfg.DataFile, schema))
	catalog, err := records.Load()
	if err != nil {
		loggerClient.Errorf("Failed to load workbook %s: %v", cfg.DataFile, err)
		os.Exit(1)
	}
	loggerClient.Info("workbook loaded",
		logger.String("file", cfg.DataFile),
		logger.Int("collections", catalog.Len()),
		logger.Int("records", catalog.RecordCount()))

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitRefill,
			TrustProxy:        cfg.TrustProxy,
		},
		DataFile:     cfg.DataFile,
		Records:      records,
		SecureCookie: cfg.SecureCookie,
	}

	closers := make(map[string]io.Closer)
	persister, err := openPersister(cfg, loggerClient, &d, closers)
	if err != nil {
		loggerClient.Errorf("Failed to open bookmark backend %q: %v", cfg.BookmarkBackend, err)
		os.Exit(1)
	}

	d.Bookmarks = bookmarks.NewService(persister, loggerClient)
	n := d.Bookmarks.Load(context.Background())
	loggerClient.Info("bookmarks loaded",
		logger.String("backend", persister.Name()),
		logger.Int("count", n))

	d.Sessions = session.NewRegistry()
	sweeper := scheduler.NewSessionSweeper(d.Sessions, loggerClient, cfg.SessionSweepInterval, cfg.SessionTTL)

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		server:  server,
		sweeper: sweeper,
		closers: closers,
	}
}

// openPersister builds the bookmark backend selected in cfg and records
// anything that must be closed on shutdown.
func openPersister(cfg *config.Config, log logger.Logger, d *deps.Deps, closers map[string]io.Closer) (bookmarks.Persister, error) {
	switch cfg.BookmarkBackend {
	case config.BackendRedis:
		client, err := redis.New(context.Background(), redis.ConnectOptions{
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
		}, log)
		if err != nil {
			return nil, err
		}
		d.RedisClient = client
		closers["redis"] = client
		return redisstore.NewStore(client, cfg.RedisKeyPrefix), nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if aside := store.Recovered(); aside != "" {
			log.Warn("corrupt sqlite bookmark database moved aside, starting with an empty set",
				logger.String("path", cfg.SQLitePath),
				logger.String("moved_to", aside))
		}
		log.Info("sqlite opened", logger.String("path", cfg.SQLitePath))
		d.SQLite = store
		closers["sqlite"] = store
		return store, nil

	default:
		return file.NewStore(cfg.BookmarkFile), nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting csfinder v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("csfinder %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.sweeper.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.sweeper.Stop()
		a.closeAll()
		return err
	}

	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeAll()

	a.logger.Info("✅ csfinder stopped cleanly")
	return nil
}

func (a *App) closeAll() {
	for name, c := range a.closers {
		utils.CloseLogged(c, name, a.logger)
	}
}
