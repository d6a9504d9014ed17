// Package upsert реализует HTTP-обработчик для установки месячного бюджета
// по категории. Повторная установка для той же тройки (пользователь, месяц,
// категория) заменяет сумму.
package upsert

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
	services "github.com/magabrotheeeer/finance-tracker/internal/services/ledger"
)

// Handler управляет HTTP-запросами на установку бюджета.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики установки бюджета.
type Service interface {
	UpsertBudget(ctx context.Context, userUID string, req models.DummyBudget) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Установить бюджет на месяц
// @Description Создает или заменяет лимит расходов по категории за месяц.
// @Tags Budgets
// @Accept  json
// @Produce  json
// @Param request body models.DummyBudget true "Данные бюджета"
// @Success 200 {object} map[string]any "Бюджет сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или месяц"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.upsert"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBudget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.UpsertBudget(r.Context(), userUID, req); err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			log.Error("invalid month in request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month, expected format 2006-01-02"))
			return
		}
		log.Error("failed to upsert budget", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upsert budget"))
		return
	}

	log.Info("budget upserted", slog.String("category", req.Category))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"category": req.Category,
		"month":    req.Month,
	}))
}
