package queue

import (
	"encoding/json"

	"github.com/autodrop-platform/autodrop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskInboundSMS 入站短信处理任务
	TaskInboundSMS = constants.TaskInboundSMS
	// TaskOrderPaidNotify 订单支付成功通知任务
	TaskOrderPaidNotify = constants.TaskOrderPaidNotify
)

// InboundSMSPayload 入站短信任务载荷
type InboundSMSPayload struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// OrderPaidNotifyPayload 支付成功通知任务载荷
type OrderPaidNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
}

// NewInboundSMSTask 创建入站短信任务
func NewInboundSMSTask(payload InboundSMSPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInboundSMS, body), nil
}

// NewOrderPaidNotifyTask 创建支付成功通知任务
func NewOrderPaidNotifyTask(payload OrderPaidNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPaidNotify, body), nil
}
