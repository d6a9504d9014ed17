package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
)

// OwnerCheckMiddleware сверяет UID из URL с UID владельца токена.
// Несовпадение означает попытку читать чужие данные и отклоняется
// со статусом 401 без уточнения причины.
func OwnerCheckMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OwnerCheckMiddleware"

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			pathUID := chi.URLParam(r, "user_uid")
			if pathUID != userUID {
				log.Warn("path owner mismatch",
					slog.String("op", op),
					slog.String("path_uid", pathUID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
