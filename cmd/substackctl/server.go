package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/db"
	"github.com/doodlesbykumbi/substack-in-go/pkg/logging"
	"github.com/doodlesbykumbi/substack-in-go/pkg/reminder"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/endpoints"
	gormstore "github.com/doodlesbykumbi/substack-in-go/pkg/server/store/gorm"
)

const shutdownTimeout = 10 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the SubStack API server",
	Long: `Run the SubStack API server and, unless disabled in the configuration,
the daily renewal reminder job.

To run the server requires DATABASE_URL and a JWT secret
(SUBSTACK_JWT_SECRET or jwt_secret in substack.yml).

By default, database migrations are run on startup. Use --no-migrate to skip.

Send SIGHUP to reload the configuration file; SIGINT or SIGTERM shuts the
server down gracefully.`,
	Run: func(cmd *cobra.Command, args []string) {
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")

		if err := runServer(host, port, noMigrate); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

func runServer(host, port string, noMigrate bool) error {
	// Validate required configuration first (fail fast)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.Set(cfg)
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	if db.URL() == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if !noMigrate {
		logrus.Info("Running database migrations...")
		if err := runMigrations(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	database, err := db.Connect(db.Config{MaxOpenConns: 20, MaxIdleConns: 5})
	if err != nil {
		return fmt.Errorf("unable to connect to DB: %w", err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL())
	if err != nil {
		return err
	}

	s := server.NewServer(cfg, database, tokens, host, port)
	endpoints.RegisterAll(s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onReload := func(c *config.SubStackConfig) {
		s.UpdateConfig(c)
		if err := logging.Configure(c.LogLevel, c.LogFormat); err != nil {
			logrus.WithError(err).Warn("keeping previous log settings")
		}
	}
	go watchConfig(ctx, onReload)
	go reloadOnHangup(ctx, onReload)

	if cfg.EnableScheduler {
		locker, err := newLocker(cfg)
		if err != nil {
			return err
		}
		processor := reminder.NewProcessor(
			gormstore.NewRemindersStore(database),
			reminder.NewSender(cfg),
			reminder.NewMetrics(s.Metrics.Registerer()),
		)
		scheduler := reminder.NewScheduler(processor, func() int { return s.Config().ReminderCheckHour }, locker)
		go scheduler.Run(ctx)
	} else {
		logrus.Info("Scheduler is disabled via configuration")
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Running server at http://%s...", s.Addr())
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logrus.Info("Server stopped")
	return nil
}

// newLocker returns a Redis lock when redis_url is configured.
func newLocker(cfg *config.SubStackConfig) (reminder.Locker, error) {
	if cfg.RedisURL == "" {
		return reminder.LocalLocker{}, nil
	}
	locker, err := reminder.NewRedisLocker(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis_url: %w", err)
	}
	return locker, nil
}

func watchConfig(ctx context.Context, onReload func(*config.SubStackConfig)) {
	if err := config.Watch(ctx, onReload); err != nil {
		logrus.WithError(err).Warn("config file watching disabled")
	}
}

// reloadOnHangup reloads the configuration on SIGHUP, which is what
// "substackctl configuration apply" sends.
func reloadOnHangup(ctx context.Context, onReload func(*config.SubStackConfig)) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			cfg, err := config.Reload()
			if err != nil {
				logrus.WithError(err).Warn("config reload failed, keeping previous configuration")
				continue
			}
			logrus.Info("configuration reloaded on SIGHUP")
			onReload(cfg)
		}
	}
}
