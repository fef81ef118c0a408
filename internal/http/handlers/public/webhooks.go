package public

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/autodrop-platform/autodrop/internal/bots"
	"github.com/autodrop-platform/autodrop/internal/http/response"
	"github.com/autodrop-platform/autodrop/internal/payment/stripe"
	"github.com/autodrop-platform/autodrop/internal/queue"
	"github.com/autodrop-platform/autodrop/internal/service"

	"github.com/gin-gonic/gin"
)

// StripeWebhook Stripe webhook 回调；验签通过且支付成功时将订单标记为已支付。
func (h *Handler) StripeWebhook(c *gin.Context) {
	log := requestLog(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warnw("stripe_webhook_body_read_failed", "error", err)
		respondError(c, response.CodeBadRequest, "invalid webhook payload", err)
		return
	}
	if strings.TrimSpace(h.Config.Stripe.WebhookSecret) == "" {
		log.Warnw("stripe_webhook_secret_missing", "body_size", len(body))
		response.Success(c, gin.H{"accepted": true, "updated": false})
		return
	}

	headers := make(map[string]string)
	for key, values := range c.Request.Header {
		if len(values) == 0 {
			continue
		}
		headers[key] = values[0]
	}

	result, err := stripe.VerifyAndParseWebhook(&stripe.Config{
		SecretKey:     h.Config.Stripe.SecretKey,
		WebhookSecret: h.Config.Stripe.WebhookSecret,
	}, headers, body, time.Now())
	if err != nil {
		log.Warnw("stripe_webhook_verify_failed",
			"client_ip", c.ClientIP(),
			"body_size", len(body),
			"error", err,
		)
		respondError(c, response.CodeBadRequest, "webhook signature verification failed", err)
		return
	}

	log.Infow("stripe_webhook_received",
		"event_id", result.EventID,
		"event_type", result.EventType,
		"session_id", result.SessionID,
		"order_no", result.OrderNo,
		"status", result.Status,
	)

	if result.Status != "success" {
		response.Success(c, gin.H{"accepted": true, "updated": false, "event_type": result.EventType})
		return
	}

	order, err := h.OrderService.MarkPaidBySession(result.SessionID, result.OrderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warnw("stripe_webhook_order_not_found",
				"session_id", result.SessionID,
				"order_no", result.OrderNo,
			)
			response.Success(c, gin.H{"accepted": true, "updated": false, "event_type": result.EventType})
			return
		}
		respondError(c, response.CodeInternal, "failed to update order", err)
		return
	}

	log.Infow("stripe_webhook_order_paid",
		"order_id", order.ID,
		"order_no", order.OrderNo,
	)
	response.Success(c, gin.H{
		"accepted":   true,
		"updated":    true,
		"event_type": result.EventType,
		"order_id":   order.ID,
		"status":     order.Status,
	})
}

// TwilioSMSWebhook 入站短信回调；队列可用时异步处理，否则同步回复。
func (h *Handler) TwilioSMSWebhook(c *gin.Context) {
	log := requestLog(c)
	from := strings.TrimSpace(c.PostForm("From"))
	body := strings.TrimSpace(c.PostForm("Body"))
	if from == "" || body == "" {
		respondError(c, response.CodeBadRequest, "From and Body required", nil)
		return
	}

	if h.QueueClient.Enabled() {
		err := h.QueueClient.EnqueueInboundSMS(queue.InboundSMSPayload{From: from, Body: body})
		if err == nil {
			log.Infow("twilio_sms_enqueued", "from", from)
			response.Success(c, gin.H{"accepted": true, "queued": true})
			return
		}
		log.Warnw("twilio_sms_enqueue_failed", "from", from, "error", err)
	}

	reply := h.SMSPhoneBot.ProcessInquiry(c.Request.Context(), bots.SMSInquiry{From: from, Body: body})
	log.Infow("twilio_sms_processed",
		"from", from,
		"category", reply.Category,
		"language", reply.Language,
	)
	response.Success(c, gin.H{"accepted": true, "queued": false})
}
