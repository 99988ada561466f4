package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/auth"
	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/config"
	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/database"
	financeHttp "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/http"
	authHandler "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/http/auth"
	txHandler "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/http/transaction"
	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/transaction"
	txStore "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		transactionService = transaction.NewService(txStore.New(db))
		validator          = auth.NewValidator(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		authH        = authHandler.NewHandler()
	)

	router := financeHttp.New(validator, transactionH, authH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
