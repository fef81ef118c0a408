package public

import (
	"time"

	"github.com/autodrop-platform/autodrop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Health 健康检查，附带各外部依赖的配置状态
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":                "ok",
		"timestamp":             time.Now().UTC().Format(time.RFC3339),
		"aliexpress_configured": h.Config.AliExpress.Configured(),
		"stripe_configured":     h.Config.Stripe.Configured(),
		"openai_configured":     h.Config.OpenAI.Configured(),
		"twilio_configured":     h.Config.Twilio.Configured(),
		"sendgrid_configured":   h.Config.SendGrid.Configured(),
	})
}
