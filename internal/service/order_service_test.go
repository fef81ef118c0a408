package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/autodrop-platform/autodrop/internal/constants"
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeOrderNotifier struct {
	calls []string
}

func (n *fakeOrderNotifier) EnqueueOrderPaidNotify(orderID uint, orderNo string) error {
	n.calls = append(n.calls, orderNo)
	return nil
}

func setupOrderServiceTest(t *testing.T, notifier OrderNotifier) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderService(repository.NewOrderRepository(db), notifier), db
}

func createTestOrder(t *testing.T, db *gorm.DB, orderNo, sessionID, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          1,
		StripeSessionID: sessionID,
		Status:          status,
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(24.68)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestMarkPaidBySession(t *testing.T) {
	notifier := &fakeOrderNotifier{}
	svc, db := setupOrderServiceTest(t, notifier)
	createTestOrder(t, db, "AD20260101000000000001", "cs_test_abc", constants.OrderStatusPending)

	order, err := svc.MarkPaidBySession("cs_test_abc", "")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if order.Status != constants.OrderStatusPaid {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != "AD20260101000000000001" {
		t.Fatalf("unexpected notifier calls: %v", notifier.calls)
	}

	var stored models.Order
	if err := db.Where("order_no = ?", "AD20260101000000000001").First(&stored).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPaid {
		t.Fatalf("expected persisted paid status, got %s", stored.Status)
	}
}

func TestMarkPaidBySessionIdempotent(t *testing.T) {
	notifier := &fakeOrderNotifier{}
	svc, db := setupOrderServiceTest(t, notifier)
	createTestOrder(t, db, "AD20260101000000000002", "cs_test_def", constants.OrderStatusPaid)

	order, err := svc.MarkPaidBySession("cs_test_def", "")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if order.Status != constants.OrderStatusPaid {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("expected no notify on repeated callback, got %v", notifier.calls)
	}
}

func TestMarkPaidFallsBackToOrderNo(t *testing.T) {
	svc, db := setupOrderServiceTest(t, nil)
	createTestOrder(t, db, "AD20260101000000000003", "", constants.OrderStatusPending)

	order, err := svc.MarkPaidBySession("cs_unknown", "AD20260101000000000003")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if order.Status != constants.OrderStatusPaid {
		t.Fatalf("unexpected status: %s", order.Status)
	}
}

func TestMarkPaidUnknownOrder(t *testing.T) {
	svc, _ := setupOrderServiceTest(t, nil)
	if _, err := svc.MarkPaidBySession("cs_missing", "AD-missing"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	svc, db := setupOrderServiceTest(t, nil)
	first := createTestOrder(t, db, "AD-1", "cs_1", constants.OrderStatusPending)
	if err := db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}
	createTestOrder(t, db, "AD-2", "cs_2", constants.OrderStatusPending)

	orders, err := svc.ListByUser(1, repository.OrderListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].OrderNo != "AD-2" {
		t.Fatalf("expected newest first, got %s", orders[0].OrderNo)
	}
}
