// Package main запускает HTTP-сервер сервиса бронирования газовых баллонов.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/lpg-booking-system/internal/config"
	"github.com/mmeshcher/lpg-booking-system/internal/handler"
	"github.com/mmeshcher/lpg-booking-system/internal/middleware"
	"github.com/mmeshcher/lpg-booking-system/internal/notification"
	"github.com/mmeshcher/lpg-booking-system/internal/payment"
	"github.com/mmeshcher/lpg-booking-system/internal/repository"
	"github.com/mmeshcher/lpg-booking-system/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	var repo service.Repository
	if cfg.DatabaseURI != "" {
		repo, err = repository.NewPostgresRepository(cfg.DatabaseURI)
	} else {
		repo, err = repository.NewFileRepository(cfg.FileStoragePath)
	}
	if err != nil {
		sugar.Fatalw("storage initialization error", "error", err.Error())
	}

	var gateway payment.Gateway
	if cfg.PaymentSystemAddress != "" {
		gateway = payment.NewClient(cfg.PaymentSystemAddress)
	} else {
		gateway = payment.NewStub(cfg.PaymentDelay)
	}

	receipts := notification.NewReceiptSender(logger)

	svc := service.NewService(repo, gateway, receipts)
	defer svc.Close()

	// Восстановление сессии предыдущего запуска
	if err := svc.Restore(context.Background()); err != nil {
		sugar.Warnw("session restore error", "error", err.Error())
	}

	authMiddleware := middleware.NewAuthMiddleware("lpg-booking-secret")
	h := handler.NewHandler(svc, logger, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting lpg booking server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
