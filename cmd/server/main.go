// Command server runs the claim verification HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/debatesphere/claimcheck/internal/api"
	"github.com/debatesphere/claimcheck/internal/config"
	"github.com/debatesphere/claimcheck/internal/database"
	"github.com/debatesphere/claimcheck/internal/evidence"
	"github.com/debatesphere/claimcheck/internal/knowledge"
	"github.com/debatesphere/claimcheck/internal/llm"
	"github.com/debatesphere/claimcheck/internal/verify"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	generateConfig := flag.Bool("generate-config", false, "write a sample configuration file and exit")
	flag.Parse()

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	if *generateConfig {
		if err := config.GenerateSample(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write sample config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sample configuration written to %s\n", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Logging)

	kb := knowledge.Default()
	if cfg.Knowledge.Path != "" {
		kb, err = knowledge.Load(cfg.Knowledge.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Knowledge.Path).Msg("Failed to load knowledge base")
		}
		log.Info().Int("topics", kb.Len()).Str("path", cfg.Knowledge.Path).Msg("Knowledge base loaded")
	}

	provider, err := llm.NewProvider(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM provider")
	}

	limiter := evidence.NewLimiter(cfg.Evidence.RequestsPerSecond, cfg.Evidence.Burst)

	var encyclopedia, factCheck, generative evidence.Source
	if cfg.Evidence.Wikipedia {
		encyclopedia = evidence.NewWikipediaSource(cfg.Evidence.WikipediaLanguage, limiter)
	}
	if cfg.Evidence.FactCheckURL != "" {
		factCheck = evidence.NewFactCheckSource(cfg.Evidence.FactCheckURL, limiter)
	}
	if provider != nil {
		generative = evidence.NewGenerativeSource(provider)
		log.Info().Str("provider", provider.Name()).Msg("Generative evidence source enabled")
	}

	store, err := database.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer store.Close()

	aggregator := verify.NewAggregator(kb, encyclopedia, factCheck, generative, cfg.Evidence.SourceTimeout())
	pipeline := verify.NewPipeline(
		verify.NewExtractor(cfg.Pipeline.ClaimIndicators),
		aggregator,
		cfg.Pipeline.CacheTTL(),
		cfg.Pipeline.MaxConcurrency,
	)

	router := api.NewRouter(cfg, pipeline, store)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
