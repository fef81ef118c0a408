package bots

import (
	"context"
	"fmt"

	"github.com/autodrop-platform/autodrop/internal/logger"
)

const emailInquirySystemPrompt = `You are a professional customer service agent for AutoDrop Platform, an e-commerce store.

Respond to customer inquiries professionally and helpfully. Categorize the inquiry and detect the language.

Common inquiry types:
- order_status: Questions about order tracking, delivery
- product_info: Questions about products, specifications, availability
- returns: Return requests, exchanges, refunds
- shipping: Shipping costs, delivery times, locations
- technical: Website issues, account problems
- general: Other inquiries

Respond in JSON format: {
  "subject": "Reply subject line",
  "body": "Professional email response",
  "language": "detected language (en, es, fr, de, etc.)",
  "category": "inquiry category"
}`

const emailCampaignSystemPrompt = `Generate professional email marketing campaigns for AutoDrop Platform e-commerce store.

Campaign types:
- welcome: Welcome new customers
- abandoned_cart: Recover abandoned shopping carts
- promotion: Promotional offers and sales
- newsletter: Weekly product highlights

Return JSON format: {
  "subject": "Engaging subject line",
  "preheader": "Preview text",
  "textContent": "Plain text version",
  "htmlContent": "HTML email template",
  "targetAudience": "Target customer segment"
}`

// EmailInquiry 客户来信
type EmailInquiry struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailReply 自动回复结果
type EmailReply struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Language string `json:"language"`
	Category string `json:"category"`
}

// EmailCampaign 营销邮件内容
type EmailCampaign struct {
	Subject        string `json:"subject"`
	Preheader      string `json:"preheader"`
	TextContent    string `json:"textContent"`
	HTMLContent    string `json:"htmlContent"`
	TargetAudience string `json:"targetAudience"`
}

// EmailBot 邮件客服机器人
type EmailBot struct {
	llm    ChatCompleter
	mailer EmailSender
}

// NewEmailBot 创建邮件机器人；mailer 为空时只生成回复不外发
func NewEmailBot(llm ChatCompleter, mailer EmailSender) *EmailBot {
	return &EmailBot{
		llm:    llm,
		mailer: mailer,
	}
}

// ProcessInquiry 处理客户来信；上游失败时返回兜底文案而不是错误
func (b *EmailBot) ProcessInquiry(ctx context.Context, inquiry EmailInquiry) *EmailReply {
	fallback := &EmailReply{
		Subject:  "Re: " + inquiry.Subject,
		Body:     "Thank you for your message. Our team will respond within 24 hours.",
		Language: "en",
		Category: "general",
	}
	if b.llm == nil {
		return fallback
	}

	userPrompt := fmt.Sprintf("Customer Email:\nFrom: %s\nSubject: %s\nBody: %s", inquiry.From, inquiry.Subject, inquiry.Body)
	raw, err := b.llm.CompleteJSON(ctx, emailInquirySystemPrompt, userPrompt)
	if err != nil {
		logger.Warnw("email bot completion failed",
			"from", inquiry.From,
			"error", err,
		)
		return fallback
	}

	reply := &EmailReply{
		Subject:  readStringField(raw, "subject", "Re: "+inquiry.Subject),
		Body:     readStringField(raw, "body", "Thank you for contacting us. We'll get back to you soon."),
		Language: readStringField(raw, "language", "en"),
		Category: readStringField(raw, "category", "general"),
	}

	if b.mailer != nil {
		if err := b.mailer.SendEmail(ctx, inquiry.From, "Re: "+inquiry.Subject, reply.Body); err != nil {
			logger.Warnw("email bot relay failed",
				"to", inquiry.From,
				"error", err,
			)
		}
	}
	return reply
}

// GenerateCampaign 生成营销邮件；上游失败时返回错误
func (b *EmailBot) GenerateCampaign(ctx context.Context, campaignType string) (*EmailCampaign, error) {
	if b.llm == nil {
		return nil, ErrLLMNotConfigured
	}
	userPrompt := fmt.Sprintf("Create a %s email campaign for our e-commerce platform.", campaignType)
	raw, err := b.llm.CompleteJSON(ctx, emailCampaignSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	return &EmailCampaign{
		Subject:        readStringField(raw, "subject", ""),
		Preheader:      readStringField(raw, "preheader", ""),
		TextContent:    readStringField(raw, "textContent", ""),
		HTMLContent:    readStringField(raw, "htmlContent", ""),
		TargetAudience: readStringField(raw, "targetAudience", ""),
	}, nil
}
