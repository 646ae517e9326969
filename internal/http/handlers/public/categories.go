package public

import (
	"time"

	"github.com/agro-saffron/storefront/internal/cache"
	handlershared "github.com/agro-saffron/storefront/internal/http/handlers/shared"
	"github.com/agro-saffron/storefront/internal/http/response"
	"github.com/agro-saffron/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// ListCategories 启用中的分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	const cacheKey = "catalog:categories"
	var cached []models.Category
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.Success(c, gin.H{"items": cached})
		return
	}

	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}

	ttl := time.Duration(h.Config.Catalog.CacheTTLSeconds) * time.Second
	if ttl > 0 {
		if err := cache.SetJSON(c.Request.Context(), cacheKey, categories, ttl); err != nil {
			handlershared.RequestLog(c).Warnw("category_cache_write_failed", "error", err)
		}
	}
	response.Success(c, gin.H{"items": categories})
}

// ListCategoryProducts 分类商品分页
func (h *Handler) ListCategoryProducts(c *gin.Context) {
	id, ok := handlershared.ParamUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}
	page, pageSize := handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page", 1),
		handlershared.QueryInt(c, "page_size", 0),
	)
	result, err := h.CategoryService.ProductsPage(id, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "category products failed")
		return
	}
	response.SuccessWithPage(c, gin.H{
		"category": result.Category,
		"items":    result.Products,
	}, response.NewPagination(page, pageSize, result.Total))
}
