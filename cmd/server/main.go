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

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"xaty/api"
	"xaty/internal"
	"xaty/moderation"
	"xaty/repositories"
	"xaty/services"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// main is a thin wrapper; run() owns initialization and shutdown so
	// defers execute before the process exits.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := internal.NewLogger(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & Services
	messageRepository, err := repositories.NewMessageRepository(db, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		_ = messageRepository.Close()
	}()
	eventRepository := repositories.NewEventRepository(db)
	userRepository := repositories.NewUserRepository(db)

	filter, err := moderation.NewFilter(config.BannedWordList(), config.MaxMessageLength)
	if err != nil {
		return exitConfig, fmt.Errorf("banned word list: %w", err)
	}

	secret := []byte(config.JWTSecret)
	chatService := services.NewChatService(logger, filter, messageRepository, eventRepository, userRepository, config.LimitMessages)
	authService := services.NewAuthService(userRepository, secret, config.AuthTokenDuration)
	eventService := services.NewEventService(eventRepository)

	// 4. HTTP Server
	router := api.NewRouter(api.RouterDeps{
		Log:    logger,
		Secret: secret,
		Users:  userRepository,
		Chat:   chatService,
		Auth:   authService,
		Events: eventService,
	})

	address := fmt.Sprintf("0.0.0.0:%d", config.Port)
	server := &http.Server{Addr: address, Handler: router}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 7. Graceful Shutdown: let in-flight polling requests finish.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	return options
}
