package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/autodrop-platform/autodrop/internal/constants"
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/payment/stripe"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeGateway struct {
	fail      bool
	lastInput stripe.CreateInput
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, input stripe.CreateInput) (*stripe.CreateResult, error) {
	g.lastInput = input
	if g.fail {
		return nil, errors.New("gateway unavailable")
	}
	return &stripe.CreateResult{
		SessionID: "cs_test_abc",
		URL:       "https://checkout.stripe.com/c/pay/cs_test_abc",
		Status:    "open",
	}, nil
}

func setupCheckoutServiceTest(t *testing.T, gateway PaymentGateway) (*CheckoutService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}, &models.Order{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartService := NewCartService(cartRepo, productRepo)
	checkoutService := NewCheckoutService(cartService, orderRepo, cartRepo, gateway, "https://shop.example.com", "USD")
	return checkoutService, cartService, db
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	gateway := &fakeGateway{}
	svc, cartService, db := setupCheckoutServiceTest(t, gateway)
	product := createTestProduct(t, db, "Wireless Earbuds", "12.34")
	if _, err := cartService.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	result, err := svc.Checkout(context.Background(), CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.SessionID != "cs_test_abc" {
		t.Fatalf("unexpected session id: %s", result.SessionID)
	}
	if result.Order == nil || result.Order.Status != constants.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", result.Order)
	}
	if result.Order.TotalAmount.String() != "24.68" {
		t.Fatalf("unexpected total: %s", result.Order.TotalAmount.String())
	}
	if len(gateway.lastInput.Items) != 1 || gateway.lastInput.Items[0].UnitPrice != "12.34" {
		t.Fatalf("unexpected gateway line items: %+v", gateway.lastInput.Items)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart after checkout, got %d rows", count)
	}
}

func TestCheckoutGatewayFailureLeavesCartIntact(t *testing.T) {
	gateway := &fakeGateway{fail: true}
	svc, cartService, db := setupCheckoutServiceTest(t, gateway)
	product := createTestProduct(t, db, "Wireless Earbuds", "12.34")
	if _, err := cartService.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := svc.Checkout(context.Background(), CheckoutInput{UserID: 1}); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}

	var items []models.CartItem
	if err := db.Where("user_id = ?", 1).Find(&items).Error; err != nil {
		t.Fatalf("load cart items failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != product.ID || items[0].Quantity != 2 {
		t.Fatalf("expected cart unchanged, got %+v", items)
	}

	var orders int64
	if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orders != 0 {
		t.Fatalf("expected no persisted order, got %d", orders)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _ := setupCheckoutServiceTest(t, &fakeGateway{})
	if _, err := svc.Checkout(context.Background(), CheckoutInput{UserID: 1}); err != ErrCartEmpty {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutWithoutGateway(t *testing.T) {
	svc, _, _ := setupCheckoutServiceTest(t, nil)
	if _, err := svc.Checkout(context.Background(), CheckoutInput{UserID: 1}); err != ErrPaymentNotConfigured {
		t.Fatalf("expected ErrPaymentNotConfigured, got %v", err)
	}
}
