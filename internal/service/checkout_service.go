package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/autodrop-platform/autodrop/internal/constants"
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/payment/stripe"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/shopspring/decimal"
)

// PaymentGateway 结算会话网关
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input stripe.CreateInput) (*stripe.CreateResult, error)
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID          uint
	SuccessURL      string
	CancelURL       string
	ShippingAddress map[string]interface{}
}

// CheckoutResult 结算返回
type CheckoutResult struct {
	Order      *models.Order `json:"order"`
	SessionID  string        `json:"session_id"`
	SessionURL string        `json:"session_url"`
}

// CheckoutService 结算服务
type CheckoutService struct {
	cartService *CartService
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	gateway     PaymentGateway
	baseURL     string
	currency    string
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartService *CartService, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, gateway PaymentGateway, baseURL, currency string) *CheckoutService {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	return &CheckoutService{
		cartService: cartService,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		gateway:     gateway,
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		currency:    currency,
	}
}

// Checkout 基于购物车创建支付会话与待支付订单；订单落库之后才清空购物车
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	if s.gateway == nil {
		return nil, ErrPaymentNotConfigured
	}
	details, err := s.cartService.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrCartEmpty
	}

	orderNo := generateOrderNo()
	successURL := strings.TrimSpace(input.SuccessURL)
	if successURL == "" {
		successURL = s.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := strings.TrimSpace(input.CancelURL)
	if cancelURL == "" {
		cancelURL = s.baseURL + "/cart"
	}

	total := decimal.Zero
	lineItems := make([]stripe.LineItem, 0, len(details))
	itemSnapshots := make(models.JSONArray, 0, len(details))
	for _, detail := range details {
		product := detail.Product
		lineItems = append(lineItems, stripe.LineItem{
			Title:     product.Title,
			ImageURL:  product.ImageURL,
			UnitPrice: detail.UnitPrice.String(),
			Quantity:  detail.Quantity,
		})
		total = total.Add(detail.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(detail.Quantity))))
		itemSnapshots = append(itemSnapshots, map[string]interface{}{
			"product_id": product.ID,
			"title":      product.Title,
			"image_url":  product.ImageURL,
			"unit_price": detail.UnitPrice.String(),
			"quantity":   detail.Quantity,
		})
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, stripe.CreateInput{
		OrderNo:    orderNo,
		UserID:     input.UserID,
		Currency:   s.currency,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Items:      lineItems,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          input.UserID,
		StripeSessionID: session.SessionID,
		Status:          constants.OrderStatusPending,
		TotalAmount:     models.NewMoneyFromDecimal(total),
		Items:           itemSnapshots,
		ShippingAddress: models.JSON(input.ShippingAddress),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	if err := s.cartRepo.ClearByUser(input.UserID); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Order:      order,
		SessionID:  session.SessionID,
		SessionURL: session.URL,
	}, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("AD%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
