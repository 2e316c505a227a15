package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/0Rorschach1/midterm-exam/internal/cache"
	"github.com/0Rorschach1/midterm-exam/internal/cache/memory"
	rediscache "github.com/0Rorschach1/midterm-exam/internal/cache/redis"
	"github.com/0Rorschach1/midterm-exam/internal/config"
	"github.com/0Rorschach1/midterm-exam/internal/expiry"
	"github.com/0Rorschach1/midterm-exam/internal/job"
	"github.com/0Rorschach1/midterm-exam/internal/repository/sqlite"
	"github.com/0Rorschach1/midterm-exam/internal/service"
	"github.com/0Rorschach1/midterm-exam/internal/shortener"
	"github.com/0Rorschach1/midterm-exam/internal/transport/client"
	httpTransport "github.com/0Rorschach1/midterm-exam/internal/transport/http"
)

var rootCmd = &cobra.Command{
	Use:   "url-shortener",
	Short: "A URL shortening service with short-code expiration",
	Long:  "A URL shortening service with random base62 codes, TTL-based expiration, SQLite storage and a configurable lookup cache (memory or Redis)",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the URL shortening server",
	RunE:  runServer,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete all expired URLs and exit",
	RunE:  runCleanup,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for interacting with the server",
}

var createCmd = &cobra.Command{
	Use:   "create [URL]",
	Short: "Create a short URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateURL,
}

var getCmd = &cobra.Command{
	Use:   "get [SHORT_CODE]",
	Short: "Get information about a short URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetURL,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [SHORT_CODE]",
	Short: "Delete a short URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteURL,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all live short URLs",
	RunE:  runListURLs,
}

func init() {
	// Server command flags
	serverCmd.Flags().StringP("port", "p", "8080", "Server port")
	serverCmd.Flags().String("server-url", "http://localhost:8080", "Server URL (for building short links)")
	serverCmd.Flags().String("db-path", "urls.db", "Database file path")
	serverCmd.Flags().String("cache", config.CacheBackendMemory, "Lookup cache backend (memory or redis)")
	serverCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis cache backend")
	serverCmd.Flags().Duration("cleanup-interval", 10*time.Minute, "Interval between expired URL sweeps")

	// Code generation flags
	serverCmd.Flags().Int("code-length", 6, "Short code length")
	serverCmd.Flags().String("code-alphabet", shortener.Base62Alphabet, "Short code alphabet")
	serverCmd.Flags().Int("code-attempts", 10, "Retry budget for unique code generation")

	// Expiration flags
	serverCmd.Flags().Int("ttl-minutes", 1440, "Minutes before a short URL expires")

	// Logging flags
	serverCmd.Flags().BoolP("verbose", "v", false, "Enable per-request logging")

	// Cleanup command flags
	cleanupCmd.Flags().String("db-path", "urls.db", "Database file path")
	cleanupCmd.Flags().Int("ttl-minutes", 1440, "Minutes before a short URL expires")

	// Client command flags
	clientCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8080", "Server URL")

	// Add subcommands
	clientCmd.AddCommand(createCmd, getCmd, deleteCmd, listCmd)
	rootCmd.AddCommand(serverCmd, cleanupCmd, clientCmd)
}

// serverFlagKeys maps config keys to server command flag names for viper
var serverFlagKeys = map[string]string{
	"server.port":        "port",
	"server.url":         "server-url",
	"database.path":      "db-path",
	"cache.backend":      "cache",
	"cache.redis_addr":   "redis-addr",
	"cleanup.interval":   "cleanup-interval",
	"logging.verbose":    "verbose",
	"shortener.length":   "code-length",
	"shortener.alphabet": "code-alphabet",
	"shortener.attempts": "code-attempts",
	"expiry.ttl_minutes": "ttl-minutes",
}

// loadConfig layers command flags over SHORTENER_* environment variables
// over defaults, then validates the result
func loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range keys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}

	return config.Load(v)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, serverFlagKeys)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting URL shortener server",
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Backend),
		zap.Int("ttl_minutes", cfg.Expiry.TTLMinutes))

	// Initialize database
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize expiration policy
	policy, err := expiry.NewPolicy(cfg.Expiry.TTL())
	if err != nil {
		return fmt.Errorf("failed to create expiration policy: %w", err)
	}

	// Initialize code generator with the repository as its uniqueness oracle
	generator, err := shortener.NewRandomGenerator(cfg.Shortener, nil, repo.CodeExists)
	if err != nil {
		return fmt.Errorf("failed to create code generator: %w", err)
	}

	// Initialize lookup cache
	var lookupCache cache.Cache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		connectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lookupCache, err = rediscache.New(connectCtx, cfg.Cache.RedisAddr, cfg.Expiry.TTL())
		cancel()
		if err != nil {
			return fmt.Errorf("failed to initialize redis cache: %w", err)
		}
	default:
		lookupCache = memory.New()
	}

	urlShortener := service.NewURLShortener(repo, lookupCache, generator, policy, cfg.Shortener.Attempts, logger)
	defer func() {
		if err := urlShortener.Close(); err != nil {
			logger.Error("error closing shortener", zap.Error(err))
		}
	}()

	// Schedule the expired URL sweep
	scheduler := job.NewScheduler(logger)
	cleaner := job.NewCleanerJob(urlShortener, 30*time.Second, logger)
	if err := scheduler.AddJob(cfg.Cleanup.Interval, cleaner); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create and start HTTP server
	server := httpTransport.NewServer(urlShortener, cfg.Server.Port, cfg.Server.ServerURL, cfg.Logging.Verbose, logger)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		logger.Info("received signal, shutting down gracefully", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", zap.Error(err))
		}
	}

	logger.Info("server stopped")
	return nil
}

// cleanupFlagKeys maps config keys to cleanup command flag names
var cleanupFlagKeys = map[string]string{
	"database.path":      "db-path",
	"expiry.ttl_minutes": "ttl-minutes",
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, cleanupFlagKeys)
	if err != nil {
		return err
	}

	logger, err := newLogger(false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	policy, err := expiry.NewPolicy(cfg.Expiry.TTL())
	if err != nil {
		return fmt.Errorf("failed to create expiration policy: %w", err)
	}

	generator, err := shortener.NewRandomGenerator(cfg.Shortener, nil, repo.CodeExists)
	if err != nil {
		return fmt.Errorf("failed to create code generator: %w", err)
	}

	urlShortener := service.NewURLShortener(repo, memory.New(), generator, policy, cfg.Shortener.Attempts, logger)
	defer urlShortener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := urlShortener.CleanupExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean up expired URLs: %w", err)
	}

	fmt.Printf("Successfully deleted %d expired URL(s)\n", deleted)
	return nil
}

func runCreateURL(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Create(ctx, args[0])
}

func runGetURL(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Get(ctx, args[0])
}

func runDeleteURL(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Delete(ctx, args[0])
}

func runListURLs(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.List(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
