// Package metrics содержит счётчики Prometheus сервиса уведомлений.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpirationCyclesTotal считает завершённые циклы проверки подписок.
	ExpirationCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_expiration_cycles_total",
		Help: "Total number of completed expiration reconciliation cycles.",
	})

	// ExpirationCycleFailuresTotal считает циклы, прерванные ошибкой выборки.
	ExpirationCycleFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_expiration_cycle_failures_total",
		Help: "Total number of expiration cycles aborted by a storage query error.",
	})

	// ExpiredPaymentsTotal считает платёжные записи, переведённые в expired.
	ExpiredPaymentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_expired_payments_total",
		Help: "Total number of payment records transitioned to expired.",
	})

	// NotificationFailuresTotal считает неудачные отправки push-уведомлений.
	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_notification_failures_total",
		Help: "Total number of failed push notification deliveries.",
	})
)
