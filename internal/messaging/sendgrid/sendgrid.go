package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("sendgrid config invalid")
	ErrRequestFailed   = errors.New("sendgrid request failed")
	ErrResponseInvalid = errors.New("sendgrid response invalid")
)

const (
	defaultAPIBaseURL = "https://api.sendgrid.com"
	defaultTimeout    = 12 * time.Second
)

// Config SendGrid 发信配置。
type Config struct {
	APIKey     string
	FromEmail  string
	APIBaseURL string
}

// Client 邮件发送客户端。
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.FromEmail) == "" {
		return nil, fmt.Errorf("%w: from_email is required", ErrConfigInvalid)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// SendEmail 通过 v3 mail/send 发送单封邮件。
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("%w: to is required", ErrConfigInvalid)
	}

	payload := map[string]interface{}{
		"personalizations": []interface{}{
			map[string]interface{}{
				"to": []interface{}{
					map[string]string{"email": to},
				},
			},
		},
		"from":    map[string]string{"email": c.cfg.FromEmail},
		"subject": subject,
		"content": []interface{}{
			map[string]string{
				"type":  "text/plain",
				"value": body,
			},
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
	}

	endpoint := c.cfg.APIBaseURL + "/v3/mail/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: mail send status %d", ErrResponseInvalid, resp.StatusCode)
	}
	return nil
}
