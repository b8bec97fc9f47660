// Package pushgateway реализует клиент push-шлюза Expo.
// Шлюз принимает одно сообщение или массив сообщений и возвращает
// JSON-подтверждение; клиент не интерпретирует ответ для повторных
// отправок, доставка выполняется по принципу "best effort".
package pushgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/magabrotheeeer/notification-relay/internal/models"
)

type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент push-шлюза
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) send(ctx context.Context, body any) (*Response, error) {
	req, err := c.newRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var pushResp Response
	if err := json.NewDecoder(resp.Body).Decode(&pushResp); err != nil {
		return nil, err
	}
	return &pushResp, nil
}

// Send отправляет одно push-сообщение.
func (c *Client) Send(ctx context.Context, msg models.PushMessage) (*Response, error) {
	return c.send(ctx, msg)
}

// SendBatch отправляет пакет push-сообщений одним запросом.
func (c *Client) SendBatch(ctx context.Context, msgs []models.PushMessage) (*Response, error) {
	return c.send(ctx, msgs)
}
