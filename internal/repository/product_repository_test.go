package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/autodrop-platform/autodrop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, title, description string, categoryID *uint, aliexpressID string) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:       title,
		Description: description,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
		CategoryID:  categoryID,
		InStock:     true,
	}
	if aliexpressID != "" {
		product.AliexpressID = &aliexpressID
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductListSearchMatchesTitleOrDescription(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "Wireless Earbuds", "noise cancellation", nil, "")
	createTestProduct(t, repo, "Mini Camera", "waterproof housing", nil, "")
	createTestProduct(t, repo, "Yoga Leggings", "moisture-wicking fabric", nil, "")

	products, err := repo.List(ProductListFilter{Search: "WATERPROOF"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products count want 1 got %d", len(products))
	}
	if products[0].Title != "Mini Camera" {
		t.Fatalf("title want Mini Camera got %s", products[0].Title)
	}
}

func TestProductListCategoryAndSearchCombined(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	electronics := models.Category{Name: "Electronics", Slug: "electronics"}
	fashion := models.Category{Name: "Fashion", Slug: "fashion"}
	if err := db.Create(&electronics).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := db.Create(&fashion).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	createTestProduct(t, repo, "Sports Watch", "fitness tracking watch", &electronics.ID, "")
	createTestProduct(t, repo, "Watch Strap", "leather strap", &fashion.ID, "")

	products, err := repo.List(ProductListFilter{CategoryID: electronics.ID, Search: "watch"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products count want 1 got %d", len(products))
	}
	if products[0].Title != "Sports Watch" {
		t.Fatalf("title want Sports Watch got %s", products[0].Title)
	}
	if products[0].Category == nil || products[0].Category.Slug != "electronics" {
		t.Fatalf("category should be preloaded")
	}
}

func TestProductListPagination(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	for i := 0; i < 5; i++ {
		createTestProduct(t, repo, fmt.Sprintf("Product %d", i), "", nil, "")
	}

	page, err := repo.List(ProductListFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size want 2 got %d", len(page))
	}

	all, err := repo.List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("all count want 5 got %d", len(all))
	}
	// 倒序排列，分页第三、四条应与全量一致
	if page[0].ID != all[2].ID || page[1].ID != all[3].ID {
		t.Fatalf("pagination window mismatch")
	}
}

func TestProductGetByAliexpressID(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	created := createTestProduct(t, repo, "Wireless Earbuds", "", nil, "1005001234567890")

	found, err := repo.GetByAliexpressID("1005001234567890")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("product should be found by aliexpress id")
	}

	missing, err := repo.GetByAliexpressID("9999999999999999")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown aliexpress id should return nil")
	}
}
