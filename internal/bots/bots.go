package bots

import (
	"context"
	"errors"

	"github.com/autodrop-platform/autodrop/internal/messaging/twilio"
)

var ErrLLMNotConfigured = errors.New("llm not configured")

// ChatCompleter 聊天补全上游
type ChatCompleter interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (map[string]interface{}, error)
}

// EmailSender 邮件转发通道
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender 短信转发通道
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (*twilio.SendResult, error)
}

func readStringField(raw map[string]interface{}, key, fallback string) string {
	if raw == nil {
		return fallback
	}
	value, ok := raw[key].(string)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func readStringSlice(raw map[string]interface{}, key string) []string {
	if raw == nil {
		return []string{}
	}
	values, ok := raw[key].([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok && s != "" {
			result = append(result, s)
		}
	}
	return result
}

func readMapField(raw map[string]interface{}, key string) map[string]interface{} {
	if raw == nil {
		return nil
	}
	value, ok := raw[key].(map[string]interface{})
	if !ok {
		return nil
	}
	return value
}
