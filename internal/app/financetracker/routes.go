package financetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/auth/register"
	budgetlist "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/budget/list"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/budget/progress"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/budget/upsert"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/finance-tracker/internal/http/handlers/transaction/create"
	transactionlist "github.com/magabrotheeeer/finance-tracker/internal/http/handlers/transaction/list"
	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/finance-tracker/internal/services/auth"
	ledgerservice "github.com/magabrotheeeer/finance-tracker/internal/services/ledger"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, ledgerService *ledgerservice.LedgerService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/transactions", create.New(logger, ledgerService).ServeHTTP)
			r.Get("/transactions", transactionlist.New(logger, ledgerService).ServeHTTP)
			r.Post("/budgets", upsert.New(logger, ledgerService).ServeHTTP)
			r.Get("/budgets", budgetlist.New(logger, ledgerService).ServeHTTP)
			r.Get("/budgets/progress", progress.New(logger, ledgerService).ServeHTTP)

			// Маршруты с UID владельца в пути, для совместимости со старыми клиентами
			r.Route("/users/{user_uid}", func(r chi.Router) {
				r.Use(middlewarectx.OwnerCheckMiddleware(logger))
				r.Get("/transactions", transactionlist.New(logger, ledgerService).ServeHTTP)
				r.Get("/budgets", budgetlist.New(logger, ledgerService).ServeHTTP)
				r.Get("/budgets/progress", progress.New(logger, ledgerService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
