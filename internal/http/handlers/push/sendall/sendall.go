// Package sendall реализует HTTP-обработчик массовой рассылки уведомлений
// на все зарегистрированные push-токены.
package sendall

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notification-relay/internal/http/response"
	"github.com/magabrotheeeer/notification-relay/internal/lib/sl"
	"github.com/magabrotheeeer/notification-relay/internal/models"
	notificationservice "github.com/magabrotheeeer/notification-relay/internal/services/notification"
)

// Service описывает интерфейс бизнес-логики массовой рассылки.
type Service interface {
	NotifyAll(ctx context.Context, title, body string) (int, error)
}

// Handler управляет HTTP-запросами на массовую рассылку уведомлений.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики рассылки
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Отправить уведомление всем подписчикам
// @Description Рассылает push-уведомление на все зарегистрированные токены. Возвращает количество отправленных сообщений.
// @Tags Notifications
// @Accept  json
// @Produce  json
// @Param request body models.DummyNotification true "Заголовок и текст уведомления"
// @Success 200 {object} map[string]any "Уведомления отправлены"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или нет подписчиков"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки уведомлений"
// @Router /send-notification [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.push.sendall"
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

	sent, err := h.service.NotifyAll(r.Context(), req.Title, req.Body)
	if err != nil {
		if errors.Is(err, notificationservice.ErrNoSubscribers) {
			log.Info("no subscribers registered")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no subscribers registered"))
			return
		}
		log.Error("failed to send notification", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to send notification"))
		return
	}

	log.Info("notification sent", slog.Int("sent", sent))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"sent": sent,
	}))
}
