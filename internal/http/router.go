package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	coreauth "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/auth"
	authHandler "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/http/auth"
	txHandler "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/http/transaction"
)

func New(
	validator *coreauth.Validator,
	transactionsV1 *txHandler.Handler,
	authV1 *authHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(RequestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// The browser frontend is served from a separate origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Use(validator.Middleware)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/auth", authV1.Routes)
	})

	return router
}
