package llm

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
	ErrConfigInvalid   = errors.New("llm config invalid")
	ErrRequestFailed   = errors.New("llm request failed")
	ErrResponseInvalid = errors.New("llm response invalid")
)

const (
	defaultAPIBaseURL = "https://api.openai.com"
	defaultModel      = "gpt-4o"
	defaultTimeout    = 30 * time.Second
)

// Config OpenAI 兼容接口配置。
type Config struct {
	APIKey     string
	Model      string
	APIBaseURL string
	Timeout    time.Duration
}

// Client 聊天补全客户端。
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// CompleteJSON 请求 JSON 模式补全并解析为 map。
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (map[string]interface{}, error) {
	content, err := c.complete(ctx, systemPrompt, userPrompt, true)
	if err != nil {
		return nil, err
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode completion json failed", ErrResponseInvalid)
	}
	return parsed, nil
}

// CompleteText 请求纯文本补全。
func (c *Client) CompleteText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.complete(ctx, systemPrompt, userPrompt, false)
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	messages := make([]map[string]string, 0, 2)
	if prompt := strings.TrimSpace(systemPrompt); prompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": prompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": userPrompt})

	payload := map[string]interface{}{
		"model":    c.cfg.Model,
		"messages": messages,
	}
	if jsonMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
	}

	endpoint := c.cfg.APIBaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: chat completion status %d", ErrResponseInvalid, resp.StatusCode)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return "", fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	content := readCompletionContent(raw)
	if content == "" {
		return "", fmt.Errorf("%w: missing completion content", ErrResponseInvalid)
	}
	return content, nil
}

func readCompletionContent(raw map[string]interface{}) string {
	choices, ok := raw["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return ""
	}
	choice, ok := choices[0].(map[string]interface{})
	if !ok {
		return ""
	}
	message, ok := choice["message"].(map[string]interface{})
	if !ok {
		return ""
	}
	content, ok := message["content"].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(content)
}
