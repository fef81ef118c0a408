package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("twilio config invalid")
	ErrRequestFailed   = errors.New("twilio request failed")
	ErrResponseInvalid = errors.New("twilio response invalid")
)

const (
	defaultAPIBaseURL = "https://api.twilio.com"
	defaultTimeout    = 12 * time.Second
)

// Config Twilio 短信配置。
type Config struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
	APIBaseURL  string
}

// SendResult 短信发送结果。
type SendResult struct {
	MessageSID string
	Status     string
}

// Client 短信发送客户端。
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" {
		return nil, fmt.Errorf("%w: account_sid is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, fmt.Errorf("%w: auth_token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PhoneNumber) == "" {
		return nil, fmt.Errorf("%w: phone_number is required", ErrConfigInvalid)
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

// SendSMS 通过 Messages 接口发送短信。
func (c *Client) SendSMS(ctx context.Context, to, body string) (*SendResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, fmt.Errorf("%w: to is required", ErrConfigInvalid)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", ErrConfigInvalid)
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.cfg.PhoneNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.cfg.APIBaseURL, url.PathEscape(c.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: send message status %d", ErrResponseInvalid, resp.StatusCode)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	result := &SendResult{}
	if sid, ok := raw["sid"].(string); ok {
		result.MessageSID = strings.TrimSpace(sid)
	}
	if status, ok := raw["status"].(string); ok {
		result.Status = strings.TrimSpace(status)
	}
	if result.MessageSID == "" {
		return nil, fmt.Errorf("%w: missing message sid", ErrResponseInvalid)
	}
	return result, nil
}
