// Package progress реализует HTTP-обработчик отчёта «план против факта».
//
// Для каждого бюджета за месяц считается сумма расходов по категории,
// остаток может быть отрицательным при перерасходе. Без параметра month
// отчёт строится за текущий месяц.
package progress

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

// Handler управляет HTTP-запросами отчёта исполнения бюджетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчёта исполнения бюджетов.
type Service interface {
	Progress(ctx context.Context, userUID, monthRaw string) ([]*models.BudgetProgress, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отчёт исполнения бюджетов
// @Description Возвращает по каждой категории с бюджетом сумму расходов и остаток за месяц. Без параметра month — текущий месяц.
// @Tags Budgets
// @Produce  json
// @Param month query string false "Месяц в формате 2006-01-02"
// @Success 200 {object} map[string]any "Отчёт по категориям"
// @Failure 400 {object} response.ErrorResponse "Некорректный месяц"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/progress [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.progress"
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
	items, err := h.service.Progress(r.Context(), userUID, monthRaw)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			log.Error("invalid month parameter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month, expected format 2006-01-02"))
			return
		}
		log.Error("failed to build progress report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build progress report"))
		return
	}

	log.Info("progress report built", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"progress": items,
		"count":    len(items),
	}))
}
