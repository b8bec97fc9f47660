// Package notifyadmins реализует HTTP-обработчик рассылки уведомления
// всем администраторам с зарегистрированными push-токенами.
package notifyadmins

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

// Service описывает интерфейс бизнес-логики рассылки администраторам.
type Service interface {
	NotifyAdmins(ctx context.Context, title, body string) (int, error)
}

// Handler управляет HTTP-запросами на рассылку администраторам.
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
// @Summary Отправить уведомление всем администраторам
// @Tags Notifications
// @Accept  json
// @Produce  json
// @Param request body models.DummyNotification true "Заголовок и текст уведомления"
// @Success 200 {object} map[string]any "Количество отправленных уведомлений"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка рассылки"
// @Router /notify-admins [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.push.notifyadmins"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyNotification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("title and body are required"))
		return
	}

	sent, err := h.service.NotifyAdmins(r.Context(), req.Title, req.Body)
	if err != nil {
		log.Error("failed to notify admins", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to notify admins"))
		return
	}

	if sent == 0 {
		log.Info("no admin tokens available")
		render.JSON(w, r, response.OKWithData(map[string]any{
			"sent":    0,
			"message": "no admin tokens available",
		}))
		return
	}

	log.Info("admins notified", slog.Int("sent", sent))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"sent": sent,
	}))
}
