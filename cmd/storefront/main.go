package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/httpapi"
	"storefront/internal/repository"
	"storefront/internal/service"

	_ "storefront/docs"
)

// @title Storefront API
// @version 1.0
// @description E-commerce backend: users, catalog, carts and orders.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	usersRepo := repository.NewUser(pool)
	categoriesRepo := repository.NewCategory(pool)
	productsRepo := repository.NewProduct(pool)
	cartsRepo := repository.NewCart(pool)

	srv := httpapi.NewServer(
		logger,
		issuer,
		service.NewUser(usersRepo, issuer),
		service.NewCategory(categoriesRepo),
		service.NewProduct(productsRepo, categoriesRepo),
		service.NewCart(cartsRepo, productsRepo),
		service.NewOrder(pool),
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	return httpServer.Shutdown(shutdownCtx)
}
