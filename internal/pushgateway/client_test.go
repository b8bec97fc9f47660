package pushgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notification-relay/internal/models"
)

func TestClient_Send(t *testing.T) {
	var gotBody models.PushMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"ticket-1"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	msg := models.PushMessage{
		To:    "ExponentPushToken[abc]",
		Sound: "default",
		Title: "Subscription Ended",
		Body:  "Your subscription has expired. Renew to continue premium access.",
	}
	resp, err := client.Send(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, msg, gotBody)
	assert.Contains(t, resp.String(), "ticket-1")
}

func TestClient_SendBatch(t *testing.T) {
	var gotBody []models.PushMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"status":"ok"},{"status":"ok"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	msgs := []models.PushMessage{
		{To: "token1", Sound: "default", Title: "t", Body: "b"},
		{To: "token2", Sound: "default", Title: "t", Body: "b"},
	}
	resp, err := client.SendBatch(context.Background(), msgs)

	require.NoError(t, err)
	assert.Len(t, gotBody, 2)
	assert.NotEmpty(t, resp.String())
}

func TestClient_Send_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.Send(context.Background(), models.PushMessage{To: "token"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestClient_Send_GatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)

	_, err := client.Send(context.Background(), models.PushMessage{To: "token"})

	require.Error(t, err)
}
