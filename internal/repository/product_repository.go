package repository

import (
	"errors"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByAliexpressID(aliexpressID string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateFields(id uint, updates map[string]interface{}) (*models.Product, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 商品列表；分类过滤与搜索条件为 AND 组合，按创建时间倒序
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).Preload("Category")
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		// 大小写不敏感的子串匹配，标题与描述任一命中即可
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	query = applyLimitOffset(query, filter.Limit, filter.Offset)

	var products []models.Product
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品；未命中返回 nil
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByAliexpressID 根据货源市场商品 ID 获取商品；未命中返回 nil
func (r *GormProductRepository) GetByAliexpressID(aliexpressID string) (*models.Product, error) {
	aliexpressID = strings.TrimSpace(aliexpressID)
	if aliexpressID == "" {
		return nil, nil
	}
	var product models.Product
	if err := r.db.Where("aliexpress_id = ?", aliexpressID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// UpdateFields 部分更新商品字段；未命中返回 nil
func (r *GormProductRepository) UpdateFields(id uint, updates map[string]interface{}) (*models.Product, error) {
	if len(updates) == 0 {
		return r.GetByID(id)
	}
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}
