package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIConfig configures a transactional email HTTP API.
type APIConfig struct {
	URL            string
	APIKey         string
	From           string
	FromName       string
	WelcomeSubject string
}

// APIClient sends email through an HTTP API that accepts
// {from, to, subject, html} with a bearer API key (Resend-compatible).
type APIClient struct {
	config *APIConfig
	client *http.Client
}

type apiMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

func NewAPIClient(config *APIConfig, client *http.Client) *APIClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIClient{config: config, client: client}
}

// SendWelcome sends the welcome email to a newly created member.
func (c *APIClient) SendWelcome(ctx context.Context, to, name string) error {
	body, err := RenderWelcome(WelcomeEmailData{Name: name, FromName: c.config.FromName})
	if err != nil {
		return err
	}
	return c.Send(ctx, &Email{
		To:       []string{to},
		Subject:  c.config.WelcomeSubject,
		HTMLBody: body,
	})
}

func (c *APIClient) Send(ctx context.Context, email *Email) error {
	payload, err := json.Marshal(apiMessage{
		From:    fmt.Sprintf("%s <%s>", c.config.FromName, c.config.From),
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTMLBody,
		Text:    email.Body,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("email API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
