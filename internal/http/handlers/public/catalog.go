package public

import (
	"errors"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/http/response"
	"github.com/autodrop-platform/autodrop/internal/repository"
	"github.com/autodrop-platform/autodrop/internal/service"

	"github.com/gin-gonic/gin"
)

const searchDefaultLimit = 20

// ListCategories 获取分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch categories", err)
		return
	}
	response.Success(c, categories)
}

// ListProducts 按分类/关键词筛选商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	filter := repository.ProductListFilter{
		CategoryID: queryUint(c, "category_id"),
		Search:     strings.TrimSpace(c.Query("search")),
		Limit:      queryInt(c, "limit", 0),
		Offset:     queryInt(c, "offset", 0),
	}
	products, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch products", err)
		return
	}
	response.Success(c, products)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.CatalogService.GetProduct(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid product id", nil)
		default:
			respondError(c, response.CodeInternal, "failed to fetch product", err)
		}
		return
	}
	response.Success(c, product)
}

// SearchProducts 关键词搜索商品
func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		respondError(c, response.CodeBadRequest, "search query required", nil)
		return
	}
	products, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		CategoryID: queryUint(c, "category_id"),
		Search:     keyword,
		Limit:      queryInt(c, "limit", searchDefaultLimit),
		Offset:     queryInt(c, "offset", 0),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to search products", err)
		return
	}
	response.Success(c, products)
}
