package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/bots"
	"github.com/autodrop-platform/autodrop/internal/logger"
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/provider"
	"github.com/autodrop-platform/autodrop/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskInboundSMS, c.handleInboundSMS)
	mux.HandleFunc(queue.TaskOrderPaidNotify, c.handleOrderPaidNotify)
}

func (c *Consumer) handleInboundSMS(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_inbound_sms_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InboundSMSPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_inbound_sms_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.From) == "" {
		logger.Debugw("worker_inbound_sms_skip_empty_from")
		return nil
	}
	if c.SMSPhoneBot == nil {
		logger.Warnw("worker_inbound_sms_skip_bot_nil", "from", payload.From)
		return nil
	}
	reply := c.SMSPhoneBot.ProcessInquiry(ctx, bots.SMSInquiry{
		From: payload.From,
		Body: payload.Body,
	})
	logger.Infow("worker_inbound_sms_processed",
		"from", payload.From,
		"category", reply.Category,
		"language", reply.Language,
	)
	return nil
}

func (c *Consumer) handleOrderPaidNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_paid_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPaidNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_paid_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_paid_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_paid_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_paid_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail := ""
	if order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_paid_notify_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_paid_notify_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.Mailer == nil {
		logger.Warnw("worker_order_paid_notify_skip_mailer_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	subject := fmt.Sprintf("Order %s confirmed", order.OrderNo)
	body := buildOrderPaidEmailBody(order)
	if err := c.Mailer.SendEmail(ctx, receiverEmail, subject, body); err != nil {
		logger.Warnw("worker_order_paid_notify_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}

func buildOrderPaidEmailBody(order *models.Order) string {
	if order == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Thank you for your purchase!\n\nOrder %s has been paid.\nTotal: %s\n", order.OrderNo, order.TotalAmount.String()))
	if len(order.Items) > 0 {
		b.WriteString("\nItems:\n")
		for _, item := range order.Items {
			title, _ := item["title"].(string)
			if title == "" {
				continue
			}
			quantity := 0
			switch q := item["quantity"].(type) {
			case float64:
				quantity = int(q)
			case int:
				quantity = q
			}
			if quantity > 0 {
				b.WriteString(fmt.Sprintf("- %s x%d\n", title, quantity))
			} else {
				b.WriteString(fmt.Sprintf("- %s\n", title))
			}
		}
	}
	b.WriteString("\nWe will send tracking information once your order ships.\n")
	return b.String()
}
