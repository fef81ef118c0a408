package service

import (
	"context"
	"strings"
	"time"

	"github.com/autodrop-platform/autodrop/internal/cache"
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"
)

const (
	categoryCacheKey = "catalog:categories"
	categoryCacheTTL = 5 * time.Minute
)

// CatalogService 商品目录服务
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories 获取全部分类，启用缓存时走 Redis
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, categoryCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, categoryCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

// ListProducts 按筛选条件获取商品
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

// GetProduct 获取单个商品
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// SearchProducts 按关键词搜索商品，可叠加分类过滤
func (s *CatalogService) SearchProducts(keyword string, categoryID uint) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrInvalidInput
	}
	return s.productRepo.List(repository.ProductListFilter{
		CategoryID: categoryID,
		Search:     keyword,
	})
}
