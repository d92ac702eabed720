package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
)

// DryRunEmailID is the id reported for emails that were only logged.
const DryRunEmailID = "dry-run-id"

// DefaultResendURL is the Resend endpoint for sending a single email.
const DefaultResendURL = "https://api.resend.com/emails"

// Sender delivers an email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// NewSender returns a Resend sender when an API key is configured and a
// dry-run sender otherwise.
func NewSender(cfg *config.SubStackConfig) Sender {
	if cfg.ResendAPIKey == "" {
		logrus.Warn("resend_api_key not configured, emails will be logged only")
		return DryRunSender{}
	}
	return NewResendSender(cfg.ResendAPIKey, cfg.EmailFromAddress)
}

// DryRunSender logs emails instead of sending them.
type DryRunSender struct{}

func (DryRunSender) Send(_ context.Context, email Email) (string, error) {
	logrus.WithFields(logrus.Fields{
		"to":      email.To,
		"subject": email.Subject,
	}).Info("[DRY RUN] would send email")
	return DryRunEmailID, nil
}

// ResendSender sends email through the Resend HTTP API.
type ResendSender struct {
	APIKey string
	From   string
	URL    string
	Client *http.Client
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		APIKey: apiKey,
		From:   from,
		URL:    DefaultResendURL,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *ResendSender) Send(ctx context.Context, email Email) (string, error) {
	body, err := json.Marshal(resendRequest{
		From:    s.From,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("reading resend response: %w", err)
	}
	var out resendResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if out.Message != "" {
			return "", fmt.Errorf("resend returned %d: %s", resp.StatusCode, out.Message)
		}
		return "", fmt.Errorf("resend returned %d", resp.StatusCode)
	}

	logrus.WithFields(logrus.Fields{"to": email.To, "email_id": out.ID}).Info("email sent")
	return out.ID, nil
}
