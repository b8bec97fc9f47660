// Package register реализует HTTP-обработчик регистрации push-токена устройства.
//
// Handler принимает JSON-запрос с токеном, валидирует его и добавляет
// в реестр подписчиков; в ответ возвращается общее количество токенов.
package register

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

// Registry описывает интерфейс реестра push-токенов.
type Registry interface {
	Add(ctx context.Context, token string) (int64, error)
}

// Handler управляет HTTP-запросами на регистрацию push-токенов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	registry Registry            // Реестр push-токенов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером и реестром.
func New(log *slog.Logger, registry Registry) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать push-токен
// @Description Добавляет push-токен устройства в реестр подписчиков. Возвращает общее количество токенов.
// @Tags Tokens
// @Accept  json
// @Produce  json
// @Param request body models.DummyToken true "Push-токен устройства"
// @Success 200 {object} map[string]any "Токен зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или отсутствует токен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации токена"
// @Router /register-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.token.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyToken
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("no token provided"))
		return
	}

	total, err := h.registry.Add(r.Context(), req.Token)
	if err != nil {
		log.Error("failed to register token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register token"))
		return
	}

	log.Info("token registered", slog.Int64("total_tokens", total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"total_tokens": total,
	}))
}
