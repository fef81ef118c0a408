package service

import (
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Product   *models.Product `json:"product"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车；商品已下架的行被清理掉
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil {
			_ = s.cartRepo.DeleteByID(item.ID)
			continue
		}
		details = append(details, CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Product:   product,
		})
	}
	return details, nil
}

// AddItem 加购；同一用户同一商品的已有行合并数量
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.InStock {
		return nil, ErrProductNotAvailable
	}

	existing, err := s.cartRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := existing.Quantity + quantity
		if err := s.cartRepo.UpdateQuantity(existing.ID, merged); err != nil {
			return nil, err
		}
		existing.Quantity = merged
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity 更新购物车行数量；数量小于等于零时删除该行
func (s *CartService) SetQuantity(itemID uint, quantity int) (*models.CartItem, error) {
	if itemID == 0 {
		return nil, ErrInvalidInput
	}
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if quantity <= 0 {
		if err := s.cartRepo.DeleteByID(itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := s.cartRepo.UpdateQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(itemID uint) error {
	if itemID == 0 {
		return ErrInvalidInput
	}
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteByID(itemID)
}

// Clear 清空用户购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	return s.cartRepo.ClearByUser(userID)
}
