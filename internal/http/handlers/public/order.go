package public

import (
	"strings"

	"github.com/autodrop-platform/autodrop/internal/http/response"
	"github.com/autodrop-platform/autodrop/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders 获取用户订单列表，可按状态过滤
func (h *Handler) ListOrders(c *gin.Context) {
	userID := resolveUserID(c, "userId")
	if userID == 0 {
		respondError(c, response.CodeBadRequest, "invalid user id", nil)
		return
	}
	orders, err := h.OrderService.ListByUser(userID, repository.OrderListFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}
	response.Success(c, orders)
}
