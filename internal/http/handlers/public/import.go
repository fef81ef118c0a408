package public

import (
	"github.com/autodrop-platform/autodrop/internal/http/response"
	"github.com/autodrop-platform/autodrop/internal/service"

	"github.com/gin-gonic/gin"
)

// ImportProductRequest 商品导入请求
type ImportProductRequest struct {
	ProductURL   string `json:"product_url"`
	AliexpressID string `json:"aliexpress_id"`
}

var importErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "product url or aliexpress id required"},
	{target: service.ErrImportURLInvalid, code: response.CodeBadRequest, msg: "product url invalid"},
}

// ImportProduct 从货源市场导入商品；同一外部 ID 重复导入返回已有商品
func (h *Handler) ImportProduct(c *gin.Context) {
	if !h.Config.AliExpress.Configured() {
		respondError(c, response.CodeBadRequest, "AliExpress API credentials not configured", nil)
		return
	}
	var req ImportProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid import request", err)
		return
	}
	product, err := h.ImportService.Import(service.ImportInput{
		ProductURL:   req.ProductURL,
		AliexpressID: req.AliexpressID,
	})
	if err != nil {
		respondWithMappedError(c, err, importErrorRules, response.CodeInternal, "failed to import product")
		return
	}
	aliexpressID := ""
	if product.AliexpressID != nil {
		aliexpressID = *product.AliexpressID
	}
	requestLog(c).Infow("product_imported",
		"product_id", product.ID,
		"aliexpress_id", aliexpressID,
	)
	response.Success(c, product)
}
