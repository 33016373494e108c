package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zedorolo/pkg/errors"
	"zedorolo/pkg/logger"
)

// AssistantService relays chat messages to the external conversational
// backend and mirrors contacts into the CRM. It holds no state beyond the
// endpoint configuration; upstream failures surface as SERVICE_UNAVAILABLE
// with no retries.
type AssistantService struct {
	webhookURL string
	crmURL     string
	httpClient *http.Client
}

func NewAssistantService(webhookURL, crmURL string) *AssistantService {
	return &AssistantService{
		webhookURL: webhookURL,
		crmURL:     crmURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type AssistantRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type AssistantReply struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

func (s *AssistantService) SendMessage(ctx context.Context, message, sessionID string) (*AssistantReply, error) {
	if s.webhookURL == "" {
		return nil, errors.ServiceUnavailable("Assistant is not configured", nil)
	}

	body, err := json.Marshal(AssistantRequest{
		Message:   message,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, errors.Internal("Failed to encode assistant request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Internal("Failed to build assistant request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("Assistant webhook unreachable: %v", err)
		return nil, errors.ServiceUnavailable("Assistant is unavailable, please try again later", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, errors.ServiceUnavailable("Assistant is unavailable, please try again later", fmt.Errorf("upstream status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(fmt.Sprintf("Assistant returned status %d", resp.StatusCode), nil)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ServiceUnavailable("Assistant reply could not be read", err)
	}

	reply, err := parseAssistantReply(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.ServiceUnavailable("Assistant returned a malformed reply", err)
	}
	reply.SessionID = sessionID

	return reply, nil
}

// The upstream answers either a JSON object or a bare text body depending on
// which workflow handled the message.
func parseAssistantReply(raw []byte, contentType string) (*AssistantReply, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, fmt.Errorf("empty reply body")
	}

	if strings.Contains(contentType, "application/json") || strings.HasPrefix(text, "{") {
		var parsed struct {
			Reply  string `json:"reply"`
			Output string `json:"output"`
			Text   string `json:"text"`
		}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, err
		}

		for _, candidate := range []string{parsed.Reply, parsed.Output, parsed.Text} {
			if candidate != "" {
				return &AssistantReply{Reply: candidate}, nil
			}
		}
		return nil, fmt.Errorf("reply object has no recognized text field")
	}

	return &AssistantReply{Reply: text}, nil
}

type CRMContact struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	SessionID string `json:"sessionId"`
}

// SyncContact forwards a contact upsert to the CRM. Best-effort: callers log
// the error but never fail the user action over it.
func (s *AssistantService) SyncContact(ctx context.Context, contact CRMContact) error {
	if s.crmURL == "" {
		return nil
	}

	body, err := json.Marshal(contact)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.crmURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("CRM sync failed with status %d", resp.StatusCode)
	}

	return nil
}
