package service

import (
	"github.com/agro-saffron/storefront/internal/constants"
	"github.com/agro-saffron/storefront/internal/models"
	"github.com/agro-saffron/storefront/internal/repository"
)

// CategoryProducts 分类商品页
type CategoryProducts struct {
	Category *models.Category `json:"category"`
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// List 启用中的分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.ListActive()
}

// ProductsPage 分类下的商品分页，分类不存在或停用返回 ErrNotFound
func (s *CategoryService) ProductsPage(categoryID uint, page, pageSize int) (*CategoryProducts, error) {
	if categoryID == 0 {
		return nil, ErrNotFound
	}
	category, err := s.categoryRepo.GetActiveByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	products, total, err := s.productRepo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	return &CategoryProducts{
		Category: category,
		Products: products,
		Total:    total,
	}, nil
}
