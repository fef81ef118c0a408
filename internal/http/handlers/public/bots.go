package public

import (
	"errors"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/bots"
	"github.com/autodrop-platform/autodrop/internal/http/response"
	"github.com/autodrop-platform/autodrop/internal/service"

	"github.com/gin-gonic/gin"
)

// EmailInquiryRequest 邮件咨询请求
type EmailInquiryRequest struct {
	From    string `json:"from" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// SMSInquiryRequest 短信咨询请求
type SMSInquiryRequest struct {
	From string `json:"from" binding:"required"`
	Body string `json:"body" binding:"required"`
}

// ProductAdRequest 广告文案请求
type ProductAdRequest struct {
	Platform string `json:"platform"`
}

// PageDecorationsRequest 页面装饰请求
type PageDecorationsRequest struct {
	Theme string `json:"theme"`
}

// EmailCampaignRequest 邮件营销请求
type EmailCampaignRequest struct {
	Type string `json:"type"`
}

// EmailBotInquiry 邮件机器人自动回复
func (h *Handler) EmailBotInquiry(c *gin.Context) {
	var req EmailInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid email inquiry", err)
		return
	}
	reply := h.EmailBot.ProcessInquiry(c.Request.Context(), bots.EmailInquiry{
		From:    req.From,
		Subject: req.Subject,
		Body:    req.Body,
	})
	response.Success(c, reply)
}

// SMSBotInquiry 短信机器人自动回复
func (h *Handler) SMSBotInquiry(c *gin.Context) {
	var req SMSInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid sms inquiry", err)
		return
	}
	reply := h.SMSPhoneBot.ProcessInquiry(c.Request.Context(), bots.SMSInquiry{
		From: req.From,
		Body: req.Body,
	})
	response.Success(c, reply)
}

// BotPhoneNumber 查询机器人电话号码与配置状态
func (h *Handler) BotPhoneNumber(c *gin.Context) {
	response.Success(c, gin.H{
		"phone_number": h.SMSPhoneBot.PhoneNumber(),
		"configured":   h.Config.Twilio.Configured(),
	})
}

// GenerateProductAd 为商品生成广告文案
func (h *Handler) GenerateProductAd(c *gin.Context) {
	productID := paramUint(c, "productId")
	if productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.CatalogService.GetProduct(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}

	var req ProductAdRequest
	_ = c.ShouldBindJSON(&req)
	platform := strings.TrimSpace(req.Platform)
	if platform == "" {
		platform = "facebook"
	}
	ad := h.AdBot.GenerateProductAd(c.Request.Context(), product, platform)
	response.Success(c, ad)
}

// GenerateSocialContent 为商品生成社媒帖文
func (h *Handler) GenerateSocialContent(c *gin.Context) {
	productID := paramUint(c, "productId")
	if productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req ProductAdRequest
	_ = c.ShouldBindJSON(&req)
	platform := strings.TrimSpace(req.Platform)
	if platform == "" {
		platform = "instagram"
	}
	content, err := h.AdBot.GenerateSocialContent(c.Request.Context(), productID, platform)
	if err != nil {
		respondError(c, response.CodeInternal, "social content generation failed", err)
		return
	}
	response.Success(c, content)
}

// GeneratePageDecorations 按主题生成页面装饰
func (h *Handler) GeneratePageDecorations(c *gin.Context) {
	var req PageDecorationsRequest
	_ = c.ShouldBindJSON(&req)
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		theme = "modern"
	}
	decorations := h.AdBot.GeneratePageDecorations(c.Request.Context(), theme)
	response.Success(c, decorations)
}

// GenerateEmailCampaign 按类型生成营销邮件
func (h *Handler) GenerateEmailCampaign(c *gin.Context) {
	var req EmailCampaignRequest
	_ = c.ShouldBindJSON(&req)
	campaignType := strings.TrimSpace(req.Type)
	if campaignType == "" {
		campaignType = "newsletter"
	}
	campaign, err := h.EmailBot.GenerateCampaign(c.Request.Context(), campaignType)
	if err != nil {
		respondError(c, response.CodeInternal, "email campaign generation failed", err)
		return
	}
	response.Success(c, campaign)
}
