package public

import (
	"fmt"
	"strings"
	"time"

	"github.com/agro-saffron/storefront/internal/cache"
	handlershared "github.com/agro-saffron/storefront/internal/http/handlers/shared"
	"github.com/agro-saffron/storefront/internal/http/response"
	"github.com/agro-saffron/storefront/internal/models"
	"github.com/agro-saffron/storefront/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// productListPayload 商品列表缓存载荷
type productListPayload struct {
	Items      []models.Product    `json:"items"`
	Pagination response.Pagination `json:"pagination"`
}

// ListProducts 商品列表（搜索 / 分类 / 价格区间 / 排序 / 分页）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page", 1),
		handlershared.QueryInt(c, "page_size", 0),
	)
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(handlershared.QueryInt(c, "category_id", 0)),
		Search:     strings.TrimSpace(c.Query("search")),
		Sort:       strings.TrimSpace(c.Query("sort")),
	}
	if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid min_price", nil)
			return
		}
		filter.MinPrice = &value
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid max_price", nil)
			return
		}
		filter.MaxPrice = &value
	}

	cacheKey := productListCacheKey(filter)
	var cached productListPayload
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.SuccessWithPage(c, cached.Items, cached.Pagination)
		return
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	pagination := response.NewPagination(filter.Page, filter.PageSize, total)

	ttl := time.Duration(h.Config.Catalog.CacheTTLSeconds) * time.Second
	if ttl > 0 {
		payload := productListPayload{Items: products, Pagination: pagination}
		if err := cache.SetJSON(c.Request.Context(), cacheKey, payload, ttl); err != nil {
			handlershared.RequestLog(c).Warnw("product_list_cache_write_failed", "error", err)
		}
	}

	response.SuccessWithPage(c, products, pagination)
}

func productListCacheKey(filter repository.ProductListFilter) string {
	minPrice := ""
	if filter.MinPrice != nil {
		minPrice = filter.MinPrice.String()
	}
	maxPrice := ""
	if filter.MaxPrice != nil {
		maxPrice = filter.MaxPrice.String()
	}
	return fmt.Sprintf("catalog:products:%d:%d:%d:%s:%s:%s:%s",
		filter.Page, filter.PageSize, filter.CategoryID, filter.Sort, filter.Search, minPrice, maxPrice)
}

// GetProduct 商品详情 + 同分类相关商品
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParamUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	detail, err := h.ProductService.GetDetail(id)
	if err != nil {
		respondServiceError(c, err, "product fetch failed")
		return
	}
	response.Success(c, detail)
}

// QuickSearchProducts 快捷搜索
func (h *Handler) QuickSearchProducts(c *gin.Context) {
	summaries, err := h.ProductService.QuickSearch(c.Query("term"))
	if err != nil {
		respondError(c, response.CodeInternal, "product search failed", err)
		return
	}
	response.Success(c, gin.H{"items": summaries})
}

// ListFeaturedProducts 首页推荐商品
func (h *Handler) ListFeaturedProducts(c *gin.Context) {
	const cacheKey = "catalog:products:featured"
	var cached []models.Product
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.Success(c, gin.H{"items": cached})
		return
	}

	products, err := h.ProductService.ListFeatured()
	if err != nil {
		respondError(c, response.CodeInternal, "featured products failed", err)
		return
	}

	ttl := time.Duration(h.Config.Catalog.CacheTTLSeconds) * time.Second
	if ttl > 0 {
		if err := cache.SetJSON(c.Request.Context(), cacheKey, products, ttl); err != nil {
			handlershared.RequestLog(c).Warnw("featured_cache_write_failed", "error", err)
		}
	}
	response.Success(c, gin.H{"items": products})
}
