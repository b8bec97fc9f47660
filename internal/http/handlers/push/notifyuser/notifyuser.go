// Package notifyuser реализует HTTP-обработчик отправки уведомления
// одному устройству по его push-токену.
package notifyuser

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notification-relay/internal/http/response"
	"github.com/magabrotheeeer/notification-relay/internal/lib/sl"
	"github.com/magabrotheeeer/notification-relay/internal/models"
)

// Service описывает интерфейс бизнес-логики отправки одному устройству.
type Service interface {
	NotifyToken(ctx context.Context, token, title, body string) error
}

// Handler управляет HTTP-запросами на отправку уведомления одному устройству.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
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
// @Summary Отправить уведомление одному устройству
// @Tags Notifications
// @Accept  json
// @Produce  json
// @Param request body models.DummyUserNotification true "Токен получателя, заголовок и текст"
// @Success 200 {object} map[string]any "Уведомление отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки уведомления"
// @Router /notify-user [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.push.notifyuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUserNotification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("token, title, body required"))
		return
	}

	if err := h.service.NotifyToken(r.Context(), req.Token, req.Title, req.Body); err != nil {
		log.Error("failed to notify user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to notify user"))
		return
	}

	log.Info("user notified")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"sent": 1,
	}))
}
