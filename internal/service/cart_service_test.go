package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, productRepo), db
}

func createTestProduct(t *testing.T, db *gorm.DB, title string, price string) *models.Product {
	t.Helper()
	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := &models.Product{
		Title:   title,
		Price:   models.NewMoneyFromDecimal(amount),
		InStock: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddItemMergesExistingRow(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "Wireless Earbuds", "12.34")

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	var items []models.CartItem
	if err := db.Where("user_id = ?", 1).Find(&items).Error; err != nil {
		t.Fatalf("load cart items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single merged row, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddItemRejectsUnknownProduct(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: 999}); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSetQuantityZeroRemovesRow(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "Wireless Earbuds", "12.34")

	item, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := svc.SetQuantity(item.ID, 0)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result after removal, got %+v", result)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows after drop to zero, got %d", count)
	}
}

func TestSetQuantityUpdatesRow(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "Wireless Earbuds", "12.34")

	item, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	updated, err := svc.SetQuantity(item.ID, 7)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if updated == nil || updated.Quantity != 7 {
		t.Fatalf("unexpected updated item: %+v", updated)
	}

	var stored models.CartItem
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("load cart item failed: %v", err)
	}
	if stored.Quantity != 7 {
		t.Fatalf("expected stored quantity 7, got %d", stored.Quantity)
	}
}

func TestListByUserPrunesMissingProducts(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "Wireless Earbuds", "12.34")
	other := createTestProduct(t, db, "Smart Watch", "45.99")

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: other.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Unscoped().Delete(&models.Product{}, other.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	details, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected pruned list of 1, got %d", len(details))
	}
	if details[0].ProductID != product.ID {
		t.Fatalf("unexpected surviving product: %d", details[0].ProductID)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected orphan row removed, got %d rows", count)
	}
}

func TestRemoveItemMissingRow(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	if err := svc.RemoveItem(12345); err != ErrCartItemNotFound {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}
