// oppbot — opportunity tracking service.
//
// Analyzes opportunity text (jobs, freelance gigs, grants, competitions),
// scores it, and tracks it through an application workflow. Exposes a JSON
// API, a Twilio WhatsApp webhook, and MCP tools on /mcp.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oppbot/oppbot/internal/cache"
	"github.com/oppbot/oppbot/internal/config"
	"github.com/oppbot/oppbot/internal/enhance"
	"github.com/oppbot/oppbot/internal/notify"
	"github.com/oppbot/oppbot/internal/oppserver"
	"github.com/oppbot/oppbot/internal/sched"
	"github.com/oppbot/oppbot/internal/store"
	"github.com/oppbot/oppbot/internal/web"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("oppbot failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("OPPBOT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	slog.Info("starting oppbot",
		slog.String("version", version),
		slog.Int("port", cfg.Port),
	)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	c := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		TTL:        cfg.CacheTTL,
		MaxEntries: cfg.CacheMaxEntries,
	})
	defer c.Close()

	var enhancer enhance.Enhancer
	if cfg.LLMAPIKey != "" {
		enhancer = enhance.NewLLM(cfg.LLMAPIBase, cfg.LLMAPIKey, cfg.LLMModel, nil)
		slog.Info("llm enhancement enabled", slog.String("model", cfg.LLMModel))
	} else {
		slog.Info("llm enhancement disabled")
	}

	var notifier *notify.Notifier
	if cfg.TelegramToken != "" {
		notifier, err = notify.New(cfg.TelegramToken, cfg.TelegramChatID, cfg.NotifyThreshold)
		if err != nil {
			slog.Warn("telegram notifier init failed", slog.Any("error", err))
		} else {
			slog.Info("telegram notifier ready", slog.Float64("threshold", cfg.NotifyThreshold))
		}
	}

	srv := web.NewServer(web.Options{
		Store:          st,
		Enhancer:       enhancer,
		EnhanceTimeout: cfg.EnhanceTimeout,
		Cache:          c,
		Notifier:       notifier,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	})
	router := srv.Router()

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "oppbot",
		Version: version,
	}, nil)
	oppserver.RegisterTools(mcpServer, oppserver.Deps{
		Store:   st,
		Analyze: srv.Analyze,
		Notify:  srv.NotifyHighPriority,
	})
	router.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil))

	rescorer := sched.New(st, notifier, cfg.RescoreCron, nil)
	if err := rescorer.Start(ctx); err != nil {
		return err
	}
	defer rescorer.Stop()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		st, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("storage: postgres")
		return st, nil
	}
	st, err := store.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	slog.Info("storage: sqlite", slog.String("path", cfg.SQLitePath))
	return st, nil
}
