// Package models содержит доменные структуры сервиса уведомлений:
// платёжные записи, пользователей и push-сообщения,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы платёжной записи. Переход допустим только в одну сторону:
// active -> expired, повторное применение не меняет состояние.
const (
	PaymentStatusActive  = "active"
	PaymentStatusExpired = "expired"
)

// Payment представляет платёжную запись подписки пользователя.
// Запись создаётся внешней системой; сервис только переводит её
// в статус expired. Поля UserUID и ExpiresAt могут отсутствовать
// (битая запись) — такие записи пропускаются фоновой задачей.
type Payment struct {
	ID        int        // Идентификатор записи
	UserUID   string     // Идентификатор пользователя-владельца, пустой если отсутствует
	Status    string     // Статус: active или expired
	ExpiresAt *time.Time // Момент истечения подписки, nil если отсутствует
}
