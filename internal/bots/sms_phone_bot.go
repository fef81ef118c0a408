package bots

import (
	"context"
	"fmt"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/logger"
)

var supportedLanguages = []string{
	"en", "es", "fr", "de", "it", "pt", "ru", "zh", "ja", "ko",
	"ar", "hi", "th", "vi", "nl", "pl", "tr", "sv", "no", "da",
}

const phoneCallSystemPrompt = `You are a professional phone support agent for AutoDrop Platform.

Generate appropriate voice responses for phone calls:
- Detect language and respond accordingly
- Be conversational and helpful
- For complex issues, offer callback or transfer options
- Keep responses natural for text-to-speech

Return JSON: {
  "message": "Natural spoken response",
  "language": "detected language",
  "action": "continue|transfer|callback|resolve",
  "category": "call type"
}`

// SMSInquiry 客户短信
type SMSInquiry struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// SMSReply 短信自动回复
type SMSReply struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	Category string `json:"category"`
}

// PhoneReply 电话语音应答
type PhoneReply struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	Action   string `json:"action"`
	Category string `json:"category,omitempty"`
}

// SMSPhoneBot 短信与电话客服机器人
type SMSPhoneBot struct {
	llm         ChatCompleter
	sender      SMSSender
	phoneNumber string
}

// NewSMSPhoneBot 创建短信机器人；sender 为空时只生成回复不外发
func NewSMSPhoneBot(llm ChatCompleter, sender SMSSender, phoneNumber string) *SMSPhoneBot {
	return &SMSPhoneBot{
		llm:         llm,
		sender:      sender,
		phoneNumber: strings.TrimSpace(phoneNumber),
	}
}

func smsSystemPrompt() string {
	return fmt.Sprintf(`You are a multilingual AI customer service agent for AutoDrop Platform.

Guidelines:
- Detect the customer's language and respond in the same language
- Keep SMS responses concise (under 160 characters when possible)
- Be helpful and professional
- For complex issues, offer to transfer to human support
- Handle common inquiries: orders, shipping, products, returns

Supported languages: %s

Respond in JSON: {
  "message": "Concise helpful response in detected language",
  "language": "detected language code (en, es, fr, etc.)",
  "category": "inquiry type (order, product, shipping, support, etc.)"
}`, strings.Join(supportedLanguages, ", "))
}

// ProcessInquiry 处理客户短信；上游失败时返回兜底文案而不是错误
func (b *SMSPhoneBot) ProcessInquiry(ctx context.Context, inquiry SMSInquiry) *SMSReply {
	fallback := &SMSReply{
		Message:  "Thank you for your message. Our team will respond soon.",
		Language: "en",
		Category: "general",
	}
	if b.llm == nil {
		return fallback
	}

	userPrompt := fmt.Sprintf("SMS from %s: %s", inquiry.From, inquiry.Body)
	raw, err := b.llm.CompleteJSON(ctx, smsSystemPrompt(), userPrompt)
	if err != nil {
		logger.Warnw("sms bot completion failed",
			"from", inquiry.From,
			"error", err,
		)
		return fallback
	}

	reply := &SMSReply{
		Message:  readStringField(raw, "message", "Thank you for contacting AutoDrop Platform. We'll assist you shortly."),
		Language: readStringField(raw, "language", "en"),
		Category: readStringField(raw, "category", "general"),
	}

	if b.sender != nil {
		if _, err := b.sender.SendSMS(ctx, inquiry.From, reply.Message); err != nil {
			logger.Warnw("sms bot relay failed",
				"to", inquiry.From,
				"error", err,
			)
		}
	}
	return reply
}

// HandlePhoneCall 生成电话语音应答；无转写内容时返回开场白
func (b *SMSPhoneBot) HandlePhoneCall(ctx context.Context, callerID, transcript string) *PhoneReply {
	if strings.TrimSpace(transcript) == "" {
		return &PhoneReply{
			Message:  "Hello! Thank you for calling AutoDrop Platform. How can I help you today?",
			Language: "en",
			Action:   "greeting",
		}
	}
	fallback := &PhoneReply{
		Message:  "I apologize, but I'm having technical difficulties. Please try calling back in a moment or visit our website.",
		Language: "en",
		Action:   "callback",
	}
	if b.llm == nil {
		return fallback
	}

	userPrompt := fmt.Sprintf("Phone call from %s. Customer said: %q", callerID, transcript)
	raw, err := b.llm.CompleteJSON(ctx, phoneCallSystemPrompt, userPrompt)
	if err != nil {
		logger.Warnw("phone bot completion failed",
			"caller", callerID,
			"error", err,
		)
		return fallback
	}
	return &PhoneReply{
		Message:  readStringField(raw, "message", fallback.Message),
		Language: readStringField(raw, "language", "en"),
		Action:   readStringField(raw, "action", "continue"),
		Category: readStringField(raw, "category", ""),
	}
}

// PhoneNumber 客服号码；未配置时返回空串
func (b *SMSPhoneBot) PhoneNumber() string {
	return b.phoneNumber
}
