package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/duelhall/internal/clients/character"
	"github.com/KirkDiggler/duelhall/internal/common/clock"
	"github.com/KirkDiggler/duelhall/internal/config"
	"github.com/KirkDiggler/duelhall/internal/dice"
	"github.com/KirkDiggler/duelhall/internal/handlers/discord"
	"github.com/KirkDiggler/duelhall/internal/handlers/rest"
	"github.com/KirkDiggler/duelhall/internal/platform/otel"
	duelRepo "github.com/KirkDiggler/duelhall/internal/repositories/duel"
	duelService "github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/KirkDiggler/duelhall/internal/services/messaging"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "duelhall"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger := zerolog.New(os.Stdout).Level(cfg.Level()).With().Timestamp().Str("service", serviceName).Logger()
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up tracing")
	}

	repo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.Store).Msg("Failed to create duel repository")
	}

	characterClient, err := character.NewHTTP(&character.Config{
		BaseURL:       cfg.CharacterServiceURL,
		InternalToken: cfg.InternalToken,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create character client")
	}

	duelSvc, err := duelService.New(&duelService.Config{
		Repository:      repo,
		CharacterClient: characterClient,
		Clock:           clock.New(),
		DuelTimeout:     cfg.DuelTimeout,
		Logger:          &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create duel service")
	}

	handler, err := rest.New(&rest.Config{
		DuelService: duelSvc,
		JWTSecret:   cfg.JWTSecret,
		Logger:      &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create HTTP handler")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP server stopped")
			stop()
		}
	}()

	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
			Picker: dice.New(&dice.Config{}),
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create messaging service")
		}

		bot, err = discord.New(&discord.Config{
			Token:            cfg.DiscordToken,
			ApplicationID:    cfg.ApplicationID,
			GuildID:          cfg.GuildID,
			DuelService:      duelSvc,
			MessagingService: messagingSvc,
			Logger:           &logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create Discord bot")
		}
		if err := bot.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start Discord bot")
		}
	}

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if bot != nil {
		if err := bot.Stop(); err != nil {
			logger.Error().Err(err).Msg("Error stopping bot")
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error stopping HTTP server")
	}
	if err := closeRepo(); err != nil {
		logger.Error().Err(err).Msg("Error closing duel repository")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error flushing traces")
	}

	logger.Info().Msg("duelhall has been shut down")
}

// newRepository opens the configured duel store and returns its closer
func newRepository(ctx context.Context, cfg *config.Config) (duelRepo.Repository, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := duelRepo.NewSQLite(&duelRepo.SQLiteConfig{
			Path: cfg.SQLitePath,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			redisClient.Close()
			return nil, nil, err
		}

		repo, err := duelRepo.NewRedis(&duelRepo.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			redisClient.Close()
			return nil, nil, err
		}
		return repo, redisClient.Close, nil
	}
}
