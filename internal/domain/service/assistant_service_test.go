package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zedorolo/pkg/errors"
)

func TestSendMessageJSONReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req AssistantRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "quanto vale um gol 2012?", req.Message)
		assert.Equal(t, "session-1", req.SessionID)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output": "Depende do estado, entre 25 e 30 mil."}`))
	}))
	defer server.Close()

	svc := NewAssistantService(server.URL, "")

	reply, err := svc.SendMessage(context.Background(), "quanto vale um gol 2012?", "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Depende do estado, entre 25 e 30 mil.", reply.Reply)
	assert.Equal(t, "session-1", reply.SessionID)
}

func TestSendMessagePlainTextReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("Posso ajudar com isso.\n"))
	}))
	defer server.Close()

	svc := NewAssistantService(server.URL, "")

	reply, err := svc.SendMessage(context.Background(), "oi", "session-2")
	require.NoError(t, err)
	assert.Equal(t, "Posso ajudar com isso.", reply.Reply)
}

func TestSendMessageUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewAssistantService(server.URL, "")

	_, err := svc.SendMessage(context.Background(), "oi", "session-3")
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))
}

func TestSendMessageNotConfigured(t *testing.T) {
	svc := NewAssistantService("", "")

	_, err := svc.SendMessage(context.Background(), "oi", "session-4")
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))
}

func TestSendMessageMalformedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	svc := NewAssistantService(server.URL, "")

	_, err := svc.SendMessage(context.Background(), "oi", "session-5")
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))
}

func TestSyncContact(t *testing.T) {
	var received CRMContact
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewAssistantService("", server.URL)

	err := svc.SyncContact(context.Background(), CRMContact{
		Name:      "João",
		Email:     "joao@example.com",
		SessionID: "session-6",
	})
	require.NoError(t, err)
	assert.Equal(t, "João", received.Name)
	assert.Equal(t, "session-6", received.SessionID)

	// No CRM configured is a silent no-op.
	assert.NoError(t, NewAssistantService("", "").SyncContact(context.Background(), CRMContact{}))
}

func TestSyncContactUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	svc := NewAssistantService("", server.URL)
	assert.Error(t, svc.SyncContact(context.Background(), CRMContact{Name: "João"}))
}
