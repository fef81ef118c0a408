package public

import (
	"github.com/autodrop-platform/autodrop/internal/http/response"
	"github.com/autodrop-platform/autodrop/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid cart item data"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

// GetCart 获取用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID := resolveUserID(c, "userId")
	if userID == 0 {
		respondError(c, response.CodeBadRequest, "invalid user id", nil)
		return
	}
	items, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to fetch cart items")
		return
	}
	response.Success(c, items)
}

// AddCartItem 加入购物车；商品已在购物车时累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart item data", err)
		return
	}
	userID := req.UserID
	if userID == 0 {
		userID = contextUserID(c)
	}
	item, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to add item to cart")
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 修改购物车项数量；数量小于等于零时移除该项
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart item data", err)
		return
	}
	item, err := h.CartService.SetQuantity(id, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart item")
		return
	}
	if item == nil {
		response.Success(c, gin.H{"removed": true})
		return
	}
	response.Success(c, item)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	if err := h.CartService.RemoveItem(id); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to remove cart item")
		return
	}
	response.Success(c, gin.H{"removed": true})
}
