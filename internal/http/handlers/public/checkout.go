package public

import (
	"github.com/autodrop-platform/autodrop/internal/http/response"
	"github.com/autodrop-platform/autodrop/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	UserID          uint                   `json:"user_id"`
	SuccessURL      string                 `json:"success_url"`
	CancelURL       string                 `json:"cancel_url"`
	ShippingAddress map[string]interface{} `json:"shipping_address"`
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid order data"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrPaymentNotConfigured, code: response.CodeInternal, msg: "payment gateway not configured"},
	{target: service.ErrPaymentFailed, code: response.CodeInternal, msg: "failed to create payment session"},
}

// Checkout 基于购物车创建支付会话和待支付订单
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid order data", err)
		return
	}
	userID := req.UserID
	if userID == 0 {
		userID = contextUserID(c)
	}

	result, err := h.CheckoutService.Checkout(c.Request.Context(), service.CheckoutInput{
		UserID:          userID,
		SuccessURL:      req.SuccessURL,
		CancelURL:       req.CancelURL,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to process checkout")
		return
	}

	requestLog(c).Infow("checkout_session_created",
		"user_id", userID,
		"order_no", result.Order.OrderNo,
		"session_id", result.SessionID,
	)
	response.Success(c, gin.H{
		"order_id":     result.Order.ID,
		"order_no":     result.Order.OrderNo,
		"session_id":   result.SessionID,
		"checkout_url": result.SessionURL,
	})
}
