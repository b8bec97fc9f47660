// Package count реализует HTTP-обработчик подсчёта зарегистрированных токенов.
package count

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notification-relay/internal/http/response"
	"github.com/magabrotheeeer/notification-relay/internal/lib/sl"
)

// Registry описывает интерфейс реестра push-токенов.
type Registry interface {
	Count(ctx context.Context) (int64, error)
}

// Handler управляет HTTP-запросами на подсчёт токенов в реестре.
type Handler struct {
	log      *slog.Logger
	registry Registry
}

// New создает новый Handler с переданными логгером и реестром.
func New(log *slog.Logger, registry Registry) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
	}
}

// ServeHTTP godoc
// @Summary Количество зарегистрированных токенов
// @Tags Tokens
// @Produce  json
// @Success 200 {object} map[string]any "Количество токенов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /count [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.token.count"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	total, err := h.registry.Count(r.Context())
	if err != nil {
		log.Error("failed to count tokens", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count tokens"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"count": total,
	}))
}
