package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupImportServiceTest(t *testing.T) (*ImportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:import_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := db.Create(&models.Category{Name: "Electronics", Slug: "electronics", Icon: "laptop"}).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return NewImportService(repository.NewProductRepository(db), repository.NewCategoryRepository(db)), db
}

func TestImportIsIdempotent(t *testing.T) {
	svc, db := setupImportServiceTest(t)

	first, err := svc.Import(ImportInput{AliexpressID: "1005001234567890"})
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	second, err := svc.Import(ImportInput{AliexpressID: "1005001234567890"})
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same product, got %d and %d", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single product, got %d", count)
	}
}

func TestImportExtractsIDFromURL(t *testing.T) {
	svc, _ := setupImportServiceTest(t)

	first, err := svc.Import(ImportInput{ProductURL: "https://www.aliexpress.com/item/1005009876543210.html"})
	if err != nil {
		t.Fatalf("import by url failed: %v", err)
	}
	if first.AliexpressID == nil || *first.AliexpressID != "1005009876543210" {
		t.Fatalf("unexpected external id: %v", first.AliexpressID)
	}

	second, err := svc.Import(ImportInput{AliexpressID: "1005009876543210"})
	if err != nil {
		t.Fatalf("import by id failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected dedup across url and id, got %d and %d", first.ID, second.ID)
	}
}

func TestImportAssignsElectronicsCategory(t *testing.T) {
	svc, db := setupImportServiceTest(t)

	product, err := svc.Import(ImportInput{AliexpressID: "42"})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if product.CategoryID == nil {
		t.Fatalf("expected category assignment")
	}
	var category models.Category
	if err := db.First(&category, *product.CategoryID).Error; err != nil {
		t.Fatalf("load category failed: %v", err)
	}
	if category.Slug != "electronics" {
		t.Fatalf("unexpected category: %s", category.Slug)
	}
}

func TestImportRequiresURLOrID(t *testing.T) {
	svc, _ := setupImportServiceTest(t)
	if _, err := svc.Import(ImportInput{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
