package service

import (
	"strings"

	"github.com/agro-saffron/storefront/internal/constants"
	"github.com/agro-saffron/storefront/internal/models"
	"github.com/agro-saffron/storefront/internal/repository"
)

// ProductSummary 商品摘要（快捷搜索）
type ProductSummary struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	Price           models.Money `json:"price"`
	DiscountedPrice models.Money `json:"discounted_price"`
	ImageURL        string       `json:"image_url"`
	StockStatus     string       `json:"stock_status"`
}

// ProductDetail 商品详情 + 同分类相关商品
type ProductDetail struct {
	Product *models.Product  `json:"product"`
	Related []models.Product `json:"related"`
}

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List 上架商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	if filter.PageSize <= 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	return s.productRepo.List(filter)
}

// GetDetail 商品详情，商品不存在或已下架返回 ErrNotFound
func (s *ProductService) GetDetail(id uint) (*ProductDetail, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	product, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	related, err := s.productRepo.ListRelated(product.CategoryID, product.ID, constants.RelatedProductsLimit)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: product, Related: related}, nil
}

// QuickSearch 快捷搜索，关键词不足最小长度时返回空结果
func (s *ProductService) QuickSearch(term string) ([]ProductSummary, error) {
	trimmed := strings.TrimSpace(term)
	if len([]rune(trimmed)) < constants.QuickSearchMinChars {
		return []ProductSummary{}, nil
	}
	products, err := s.productRepo.QuickSearch(trimmed, constants.QuickSearchLimit)
	if err != nil {
		return nil, err
	}
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		p := &products[i]
		summaries = append(summaries, ProductSummary{
			ID:              p.ID,
			Name:            p.Name,
			Price:           p.Price,
			DiscountedPrice: p.DiscountedPrice(),
			ImageURL:        p.ImageURL,
			StockStatus:     p.StockStatus(),
		})
	}
	return summaries, nil
}

// ListFeatured 首页推荐商品
func (s *ProductService) ListFeatured() ([]models.Product, error) {
	return s.productRepo.ListFeatured(constants.FeaturedProductsLimit)
}
