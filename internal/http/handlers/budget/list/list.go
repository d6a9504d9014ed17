// Package list реализует HTTP-обработчик для получения бюджетов пользователя.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
	services "github.com/magabrotheeeer/finance-tracker/internal/services/ledger"
)

// Handler управляет HTTP-запросами на получение списка бюджетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения бюджетов.
type Service interface {
	ListBudgets(ctx context.Context, userUID, monthRaw string) ([]*models.Budget, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить бюджеты пользователя
// @Description Возвращает лимиты текущего пользователя. Параметр month (2006-01-02) ограничивает выборку одним месяцем.
// @Tags Budgets
// @Produce  json
// @Param month query string false "Месяц в формате 2006-01-02"
// @Success 200 {object} map[string]any "Список бюджетов"
// @Failure 400 {object} response.ErrorResponse "Некорректный месяц"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	monthRaw := r.URL.Query().Get("month")
	items, err := h.service.ListBudgets(r.Context(), userUID, monthRaw)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			log.Error("invalid month parameter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month, expected format 2006-01-02"))
			return
		}
		log.Error("failed to list budgets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list budgets"))
		return
	}

	log.Info("budgets listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"budgets": items,
		"count":   len(items),
	}))
}
