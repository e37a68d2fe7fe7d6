package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartclinic/clinic-ops/cmd/mainconfig"
	"github.com/smartclinic/clinic-ops/internal/assistant"
	appconfig "github.com/smartclinic/clinic-ops/internal/config"
	"github.com/smartclinic/clinic-ops/internal/emulator"
	"github.com/smartclinic/clinic-ops/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic backend emulator",
		"env", cfg.Env,
		"port", cfg.Port,
		"assistant", cfg.AssistantProvider,
	)

	completer := buildCompleter(context.Background(), cfg, logger)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: emulator.NewServer(emulator.ServerConfig{
			Store:     emulator.NewStore(),
			Completer: completer,
			Logger:    logger,
			Metrics:   promhttp.Handler(),
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildCompleter wires the configured assistant provider with the static
// completer as a fallback, so the chat endpoint keeps answering when the
// provider is down or unconfigured.
func buildCompleter(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) assistant.Completer {
	static := assistant.NewStaticCompleter()

	switch cfg.AssistantProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY not set, using static assistant")
			return static
		}
		gemini, err := assistant.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("gemini init failed, using static assistant", "error", err)
			return static
		}
		return assistant.NewFallbackCompleter(gemini, static, logger)
	case "bedrock":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("aws config load failed, using static assistant", "error", err)
			return static
		}
		bedrock, err := assistant.NewBedrockCompleter(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
		if err != nil {
			logger.Error("bedrock init failed, using static assistant", "error", err)
			return static
		}
		return assistant.NewFallbackCompleter(bedrock, static, logger)
	default:
		return static
	}
}
