package pushgateway

import "encoding/json"

// Response представляет JSON-подтверждение от push-шлюза.
// Содержимое поля Data шлюз определяет сам (квитанция для одного
// сообщения или массив квитанций для пакета); сервис его логирует,
// но не использует для принятия решений о повторной отправке.
type Response struct {
	Data json.RawMessage `json:"data,omitempty"`
}

// String возвращает содержимое подтверждения для логирования.
func (r *Response) String() string {
	if r == nil || len(r.Data) == 0 {
		return ""
	}
	return string(r.Data)
}
