package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/careercompass/internal/advisor"
	"github.com/muhammadolammi/careercompass/internal/auth"
	"github.com/muhammadolammi/careercompass/internal/config"
	"github.com/muhammadolammi/careercompass/internal/database"
	"github.com/muhammadolammi/careercompass/internal/localcache"
	"github.com/muhammadolammi/careercompass/internal/logger"
	"github.com/muhammadolammi/careercompass/internal/remote"
	"github.com/muhammadolammi/careercompass/internal/server"
	"github.com/muhammadolammi/careercompass/internal/synchronizer"
)

const shutdownTimeout = 15 * time.Second

var rootCmd = &cobra.Command{
	Use:           "careercompass",
	Short:         "Career guidance backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDB(cmd.Context(), cfg.DBURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	log.Info("schema applied")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireServe(); err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	srvCfg, err := setup(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer srvCfg.Close()

	store := remote.NewPostgres(srvCfg.DB, log)

	var notifier synchronizer.Notifier
	if srvCfg.RabbitConn != nil {
		n, err := newAMQPNotifier(srvCfg.RabbitConn, log.With("service", "AMQPNotifier"))
		if err != nil {
			return err
		}
		notifier = n
	}

	var gen advisor.Generator
	if srvCfg.Generator != nil {
		gen = srvCfg.Generator
	} else {
		log.Warn("empty GOOGLE_API_KEY in env, recommendations and chat use built-in fallbacks")
	}
	var resumes advisor.ResumeSource
	if srvCfg.AwsConfig != nil {
		resumes = newR2Resumes(*srvCfg.AwsConfig, cfg.R2)
	}
	adv, err := advisor.New(gen, resumes, log)
	if err != nil {
		return err
	}

	authService := auth.NewService(srvCfg.DB, cfg.JWTSecret, cfg.TokenTTL, log)

	registry := server.NewRegistry(func(deviceID string) (*synchronizer.Synchronizer, error) {
		return synchronizer.New(synchronizer.Options{
			Store:            store,
			Cache:            srvCfg.Cache,
			Namespace:        deviceID,
			Notifier:         notifier,
			Log:              log.With("service", "Synchronizer", "device", deviceID),
			Attempts:         cfg.PersistAttempts,
			Backoff:          cfg.PersistBackoff,
			Timeout:          cfg.RemoteTimeout,
			ChatHistoryLimit: cfg.ChatHistoryLimit,
			DraftDelay:       cfg.DraftDelay,
		})
	}, log)

	router := server.NewRouter(server.RouterConfig{
		Handler:     server.NewHandler(registry, adv, authService, log),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr)
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
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	// Sessions flush pending writes before the clients below are closed.
	if err := registry.Close(shutdownCtx); err != nil {
		log.Error("closing sessions", "error", err)
	}
	return nil
}

// setup opens the database, the cache and whichever optional integrations
// have settings.
func setup(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ServerConfig, error) {
	srvCfg := &ServerConfig{Config: cfg, Log: log}

	db, err := openDB(ctx, cfg.DBURL)
	if err != nil {
		return nil, err
	}
	srvCfg.DBConn = db
	srvCfg.DB = database.New(db)

	c, err := openCache(cfg)
	if err != nil {
		srvCfg.Close()
		return nil, err
	}
	srvCfg.Cache = c

	if cfg.R2.Enabled() {
		awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
			awsconfig.WithRegion("auto"),
		)
		if err != nil {
			srvCfg.Close()
			return nil, fmt.Errorf("error creating aws config: %w", err)
		}
		srvCfg.AwsConfig = &awsConfig
	}

	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			srvCfg.Close()
			return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
		}
		srvCfg.RabbitConn = conn
	}

	if cfg.GoogleAPIKey != "" {
		gen, err := newGeminiGenerator(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			srvCfg.Close()
			return nil, err
		}
		srvCfg.Generator = gen
	}
	return srvCfg, nil
}

func openDB(ctx context.Context, dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error reaching db: %w", err)
	}
	return db, nil
}

func openCache(cfg *config.Config) (cache, error) {
	switch cfg.CacheBackend {
	case "redis":
		return localcache.NewRedis(cfg.RedisAddr, "")
	case "memory":
		return localcache.NewMemory(), nil
	default:
		return localcache.OpenBolt(cfg.CachePath)
	}
}
