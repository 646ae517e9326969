package public

import (
	handlershared "github.com/agro-saffron/storefront/internal/http/handlers/shared"
	"github.com/agro-saffron/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求，数量缺省为 1
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartItemRequest 数量调整请求，小于 1 等价删除
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车（各项 + 总价 + 件数）
func (h *Handler) GetCart(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	view, err := h.CartService.List(c.Request.Context(), sess)
	if err != nil {
		respondServiceError(c, err, "cart fetch failed")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加购
func (h *Handler) AddCartItem(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if err := h.CartService.AddItem(c.Request.Context(), sess, req.ProductID, req.Quantity); err != nil {
		respondServiceError(c, err, "cart add failed")
		return
	}
	response.Success(c, gin.H{"added": true})
}

// UpdateCartItem 调整购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParamUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.CartService.UpdateQuantity(c.Request.Context(), sess, itemID, req.Quantity); err != nil {
		respondServiceError(c, err, "cart update failed")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParamUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	if err := h.CartService.RemoveItem(c.Request.Context(), sess, itemID); err != nil {
		respondServiceError(c, err, "cart remove failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(c.Request.Context(), sess); err != nil {
		respondServiceError(c, err, "cart clear failed")
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// CartCount 购物车商品总件数
func (h *Handler) CartCount(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	count, err := h.CartService.Count(c.Request.Context(), sess)
	if err != nil {
		respondServiceError(c, err, "cart count failed")
		return
	}
	response.Success(c, gin.H{"count": count})
}
