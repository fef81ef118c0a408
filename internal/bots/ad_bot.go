package bots

import (
	"context"
	"fmt"
	"strconv"

	"github.com/autodrop-platform/autodrop/internal/logger"
	"github.com/autodrop-platform/autodrop/internal/models"
)

const productAdSystemPrompt = `You are a professional marketing copywriter specializing in e-commerce advertising.

Create compelling ads for different platforms:
- facebook: Engaging, emotional, visual-focused
- google: Search-focused, benefit-driven, keyword-rich
- instagram: Visual-first, lifestyle-oriented, hashtag-friendly
- twitter: Concise, trending, conversational
- email: Personal, value-focused, action-oriented

Return JSON: {
  "headline": "Attention-grabbing headline (max 50 chars for most platforms)",
  "description": "Compelling product description with benefits",
  "callToAction": "Strong CTA button text",
  "targetAudience": "Primary target demographic",
  "keywords": ["relevant", "keywords", "for", "targeting"]
}`

const pageDecorationsSystemPrompt = `Generate compelling page decorations and promotional content for AutoDrop Platform.

Themes:
- modern: Clean, minimalist, tech-focused
- seasonal: Holiday and seasonal promotions
- urgent: Sales, limited time offers, scarcity
- luxury: Premium, high-end, exclusive
- tech-focused: Innovation, cutting-edge, gadgets

Return JSON: {
  "bannerText": "Eye-catching banner message",
  "heroSection": {
    "headline": "Main hero headline",
    "subtitle": "Supporting subtitle",
    "ctaText": "Call-to-action button text"
  },
  "promotionalBadges": ["badge1", "badge2", "badge3"],
  "urgencyMessages": ["message1", "message2"]
}`

const socialContentSystemPrompt = `Create engaging social media content for e-commerce products.

Platform-specific guidelines:
- instagram: Visual storytelling, hashtags, lifestyle focus
- facebook: Community engagement, shareability, emotional connection
- twitter: Concise, trendy, conversation-starter
- tiktok: Entertaining, viral potential, youth-focused
- pinterest: Inspirational, aesthetic, save-worthy

Return JSON: {
  "caption": "Engaging post caption",
  "hashtags": ["#relevant", "#hashtags"],
  "visualDescription": "Description of ideal accompanying image/video",
  "postingTips": "Best practices for this platform"
}`

// AdContent 商品广告文案
type AdContent struct {
	Headline       string   `json:"headline"`
	Description    string   `json:"description"`
	CallToAction   string   `json:"callToAction"`
	TargetAudience string   `json:"targetAudience"`
	Platform       string   `json:"platform"`
	Keywords       []string `json:"keywords"`
}

// HeroSection 首页主视觉文案
type HeroSection struct {
	Headline string `json:"headline"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
}

// PageDecorations 页面装饰文案
type PageDecorations struct {
	BannerText        string      `json:"bannerText"`
	HeroSection       HeroSection `json:"heroSection"`
	PromotionalBadges []string    `json:"promotionalBadges"`
	UrgencyMessages   []string    `json:"urgencyMessages"`
}

// SocialContent 社媒帖文内容
type SocialContent struct {
	Caption           string   `json:"caption"`
	Hashtags          []string `json:"hashtags"`
	VisualDescription string   `json:"visualDescription"`
	PostingTips       string   `json:"postingTips"`
}

// AdBot 广告与装饰文案机器人
type AdBot struct {
	llm ChatCompleter
}

// NewAdBot 创建广告机器人
func NewAdBot(llm ChatCompleter) *AdBot {
	return &AdBot{llm: llm}
}

// GenerateProductAd 生成商品广告；上游失败时逐字段回退到商品自带信息
func (b *AdBot) GenerateProductAd(ctx context.Context, product *models.Product, platform string) *AdContent {
	fallback := &AdContent{
		Headline:       product.Title,
		Description:    fallbackDescription(product),
		CallToAction:   "Shop Now",
		TargetAudience: "General shoppers",
		Platform:       platform,
		Keywords:       []string{},
	}
	if b.llm == nil {
		return fallback
	}

	userPrompt := fmt.Sprintf("Create a %s ad for this product:\n\nTitle: %s\nDescription: %s\nPrice: $%s\nCategory: General",
		platform, product.Title, fallbackDescription(product), product.Price.String())
	raw, err := b.llm.CompleteJSON(ctx, productAdSystemPrompt, userPrompt)
	if err != nil {
		logger.Warnw("product ad generation failed",
			"product_id", product.ID,
			"platform", platform,
			"error", err,
		)
		return fallback
	}
	return &AdContent{
		Headline:       readStringField(raw, "headline", product.Title),
		Description:    readStringField(raw, "description", fallbackDescription(product)),
		CallToAction:   readStringField(raw, "callToAction", "Shop Now"),
		TargetAudience: readStringField(raw, "targetAudience", "General shoppers"),
		Platform:       platform,
		Keywords:       readStringSlice(raw, "keywords"),
	}
}

// GeneratePageDecorations 生成页面装饰文案；上游失败时返回默认装饰
func (b *AdBot) GeneratePageDecorations(ctx context.Context, theme string) *PageDecorations {
	fallback := defaultPageDecorations()
	if b.llm == nil {
		return fallback
	}

	userPrompt := fmt.Sprintf("Create %s themed decorations for our e-commerce platform AutoDrop Platform.", theme)
	raw, err := b.llm.CompleteJSON(ctx, pageDecorationsSystemPrompt, userPrompt)
	if err != nil {
		logger.Warnw("page decoration generation failed",
			"theme", theme,
			"error", err,
		)
		return fallback
	}

	hero := readMapField(raw, "heroSection")
	decorations := &PageDecorations{
		BannerText: readStringField(raw, "bannerText", fallback.BannerText),
		HeroSection: HeroSection{
			Headline: readStringField(hero, "headline", fallback.HeroSection.Headline),
			Subtitle: readStringField(hero, "subtitle", fallback.HeroSection.Subtitle),
			CTAText:  readStringField(hero, "ctaText", fallback.HeroSection.CTAText),
		},
		PromotionalBadges: readStringSlice(raw, "promotionalBadges"),
		UrgencyMessages:   readStringSlice(raw, "urgencyMessages"),
	}
	if len(decorations.PromotionalBadges) == 0 {
		decorations.PromotionalBadges = fallback.PromotionalBadges
	}
	if len(decorations.UrgencyMessages) == 0 {
		decorations.UrgencyMessages = fallback.UrgencyMessages
	}
	return decorations
}

// GenerateSocialContent 生成社媒帖文；上游失败时返回错误
func (b *AdBot) GenerateSocialContent(ctx context.Context, productID uint, platform string) (*SocialContent, error) {
	if b.llm == nil {
		return nil, ErrLLMNotConfigured
	}
	userPrompt := fmt.Sprintf("Create %s content for product ID: %s", platform, strconv.FormatUint(uint64(productID), 10))
	raw, err := b.llm.CompleteJSON(ctx, socialContentSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	return &SocialContent{
		Caption:           readStringField(raw, "caption", ""),
		Hashtags:          readStringSlice(raw, "hashtags"),
		VisualDescription: readStringField(raw, "visualDescription", ""),
		PostingTips:       readStringField(raw, "postingTips", ""),
	}, nil
}

func defaultPageDecorations() *PageDecorations {
	return &PageDecorations{
		BannerText: "Welcome to AutoDrop Platform",
		HeroSection: HeroSection{
			Headline: "Discover Amazing Products",
			Subtitle: "Quality items at unbeatable prices",
			CTAText:  "Shop Now",
		},
		PromotionalBadges: []string{"Free Shipping", "24/7 Support", "Easy Returns"},
		UrgencyMessages:   []string{"Limited Time Offer", "While Supplies Last"},
	}
}

func fallbackDescription(product *models.Product) string {
	if product.Description != "" {
		return product.Description
	}
	return "Great product for you"
}
