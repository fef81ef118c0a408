package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCatalogService(repository.NewCategoryRepository(db), repository.NewProductRepository(db)), db
}

func seedSearchProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{
			Title:       "Bluetooth Speaker",
			Description: "Portable waterproof speaker with deep bass",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(23.45)),
			InStock:     true,
		},
		{
			Title:       "Phone Case",
			Description: "Slim protective cover",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(5.99)),
			InStock:     true,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
	}
}

func TestSearchMatchesDescriptionOnly(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedSearchProducts(t, db)

	results, err := svc.SearchProducts("waterproof", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Bluetooth Speaker" {
		t.Fatalf("unexpected result: %s", results[0].Title)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedSearchProducts(t, db)

	results, err := svc.SearchProducts("WATERPROOF", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestSearchRequiresKeyword(t *testing.T) {
	svc, _ := setupCatalogServiceTest(t)
	if _, err := svc.SearchProducts("   ", 0); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := setupCatalogServiceTest(t)
	if _, err := svc.GetProduct(404); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestListProductsByCategory(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	category := models.Category{Name: "Electronics", Slug: "electronics", Icon: "laptop"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	inCategory := models.Product{
		Title:      "Smart Watch",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(45.99)),
		CategoryID: &category.ID,
		InStock:    true,
	}
	if err := db.Create(&inCategory).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	seedSearchProducts(t, db)

	results, err := svc.ListProducts(repository.ProductListFilter{CategoryID: category.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Smart Watch" {
		t.Fatalf("unexpected category listing: %+v", results)
	}
}

func TestListCategories(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	for _, category := range []models.Category{
		{Name: "Top deals", Slug: "top-deals", Icon: "tags"},
		{Name: "Electronics", Slug: "electronics", Icon: "laptop"},
	} {
		if err := db.Create(&category).Error; err != nil {
			t.Fatalf("seed category failed: %v", err)
		}
	}
	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
}
