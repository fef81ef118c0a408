package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/shopspring/decimal"
)

const importedImageURL = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"

var productURLIDPattern = regexp.MustCompile(`/item/(\d+)\.html`)

// ImportInput 商品导入输入
type ImportInput struct {
	ProductURL   string
	AliexpressID string
}

// ImportService 货源市场商品导入服务
type ImportService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewImportService 创建导入服务
func NewImportService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ImportService {
	return &ImportService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Import 按外部商品 ID 导入；同一外部 ID 重复导入返回已有商品
func (s *ImportService) Import(input ImportInput) (*models.Product, error) {
	aliexpressID := strings.TrimSpace(input.AliexpressID)
	productURL := strings.TrimSpace(input.ProductURL)
	if aliexpressID == "" && productURL == "" {
		return nil, ErrInvalidInput
	}
	if aliexpressID == "" {
		aliexpressID = extractProductID(productURL)
	}

	if aliexpressID != "" {
		existing, err := s.productRepo.GetByAliexpressID(aliexpressID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}
	if aliexpressID == "" {
		aliexpressID = fmt.Sprintf("mock_%d", time.Now().UnixMilli())
	}

	var categoryID *uint
	if category, err := s.categoryRepo.GetBySlug("electronics"); err == nil && category != nil {
		categoryID = &category.ID
	}

	originalPrice := models.NewMoneyFromDecimal(decimal.NewFromFloat(39.99))
	product := &models.Product{
		Title:         fmt.Sprintf("Imported Product %d", time.Now().UnixMilli()),
		Description:   "Product imported from AliExpress",
		Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(29.99)),
		OriginalPrice: &originalPrice,
		Rating:        decimal.NewFromFloat(4.5),
		RatingCount:   100,
		ImageURL:      importedImageURL,
		CategoryID:    categoryID,
		AliexpressID:  &aliexpressID,
		InStock:       true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func extractProductID(productURL string) string {
	matches := productURLIDPattern.FindStringSubmatch(productURL)
	if len(matches) == 2 {
		return matches[1]
	}
	return ""
}
