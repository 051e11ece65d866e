// StudentHub - Student Records API and Assistant Server
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

	"github.com/avagyan/studenthub/internal/agent"
	"github.com/avagyan/studenthub/internal/api"
	"github.com/avagyan/studenthub/internal/chat"
	"github.com/avagyan/studenthub/internal/config"
	"github.com/avagyan/studenthub/internal/llm"
	"github.com/avagyan/studenthub/internal/middleware"
	"github.com/avagyan/studenthub/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Initialize handlers.
	apiHandler := api.NewHandler(repo)

	// Initialize the assistant (optional).
	var chatHandler *chat.Handler
	var transcripts *agent.TranscriptLogger
	aiEnabled := cfg.OpenAI.APIKey != ""
	if aiEnabled {
		transcripts, err = agent.NewTranscriptLogger(agent.TranscriptConfig{
			Enabled:   cfg.Transcript.Enabled,
			Dir:       cfg.Transcript.Dir,
			QueueSize: cfg.Transcript.QueueSize,
		}, logger)
		if err != nil {
			slog.Error("Failed to initialize transcript logger", "error", err)
			os.Exit(1)
		}
		defer transcripts.Close()

		var opts []llm.OpenAIOption
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, llm.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, opts...)

		registry := agent.NewRegistry(repo)
		runner := agent.NewRunner(client, registry, agent.RunnerConfig{
			MaxSteps:    cfg.Agent.MaxSteps,
			TurnTimeout: cfg.Agent.TurnTimeout,
			ToolTimeout: cfg.Agent.ToolTimeout,
		})

		hub := chat.NewHub()
		chatHandler = chat.NewHandler(runner, hub, transcripts, cfg.FrontendURL, cfg.IsDevelopment())
		slog.Info("Assistant initialized", "model", cfg.OpenAI.Model, "max_steps", cfg.Agent.MaxSteps)
	} else {
		slog.Info("AI features disabled (OPENAI_API_KEY not set)")
	}

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	apiHandler.RegisterRoutes(r)

	// WebSocket endpoint (only if AI is enabled).
	if chatHandler != nil {
		r.Get("/ws/chat", chatHandler.ServeHTTP)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout, chat turns can outlive a fixed write window
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
