package service

import (
	"strings"

	"github.com/autodrop-platform/autodrop/internal/constants"
	"github.com/autodrop-platform/autodrop/internal/logger"
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"
)

// OrderNotifier 订单事件通知入队
type OrderNotifier interface {
	EnqueueOrderPaidNotify(orderID uint, orderNo string) error
}

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	notifier  OrderNotifier
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, notifier OrderNotifier) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// ListByUser 获取用户订单
func (s *OrderService) ListByUser(userID uint, filter repository.OrderListFilter) ([]models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.orderRepo.ListByUser(userID, filter)
}

// GetByID 获取订单
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// MarkPaidBySession 支付回调成功后把订单置为已支付；重复回调幂等
func (s *OrderService) MarkPaidBySession(sessionID, orderNo string) (*models.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	orderNo = strings.TrimSpace(orderNo)
	if sessionID == "" && orderNo == "" {
		return nil, ErrInvalidInput
	}

	order, err := s.orderRepo.GetByStripeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil && orderNo != "" {
		order, err = s.orderRepo.GetByOrderNo(orderNo)
		if err != nil {
			return nil, err
		}
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusPaid {
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusPaid); err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusPaid

	if s.notifier != nil {
		if err := s.notifier.EnqueueOrderPaidNotify(order.ID, order.OrderNo); err != nil {
			logger.Warnw("enqueue order paid notify failed",
				"order_no", order.OrderNo,
				"error", err,
			)
		}
	}
	return order, nil
}
