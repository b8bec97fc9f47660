package models

// PushMessage представляет одно сообщение для push-шлюза Expo.
type PushMessage struct {
	To    string `json:"to"`
	Sound string `json:"sound"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// DummyToken используется для приёма push-токена из JSON-запроса
// на регистрацию устройства.
type DummyToken struct {
	Token string `json:"token" validate:"required"` // Expo push-токен устройства
}

// DummyNotification используется для приёма заголовка и текста уведомления
// из JSON-запроса на массовую рассылку.
type DummyNotification struct {
	Title string `json:"title" validate:"required"` // Заголовок уведомления
	Body  string `json:"body" validate:"required"`  // Текст уведомления
}

// DummyUserNotification используется для приёма данных уведомления
// конкретному устройству из JSON-запроса.
type DummyUserNotification struct {
	Token string `json:"token" validate:"required"` // Expo push-токен получателя
	Title string `json:"title" validate:"required"` // Заголовок уведомления
	Body  string `json:"body" validate:"required"`  // Текст уведомления
}
