package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agro-saffron/storefront/internal/constants"
	"github.com/agro-saffron/storefront/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetActiveByID(id uint) (*models.Product, error)
	ListRelated(categoryID, excludeID uint, limit int) ([]models.Product, error)
	QuickSearch(term string, limit int) ([]models.Product, error)
	ListFeatured(limit int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表（搜索 / 分类 / 价格区间 / 排序 / 分页）
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"products.name", "products.description"})
		// 分类名也参与搜索，EXISTS 子查询避免 JOIN 影响计数
		categoryCondition := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM categories c WHERE c.id = products.category_id AND c.deleted_at IS NULL AND c.name %s ?)",
			likeOperator(r.db),
		)
		query = query.Where(condition+" OR "+categoryCondition, repeatLikeArgs(like, argCount+1)...)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order(productOrderClause(filter.Sort)).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// productOrderClause 把排序键转换为 ORDER BY 子句，未知键回退到名称升序。
func productOrderClause(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case constants.ProductSortNameDesc:
		return "name DESC, id ASC"
	case constants.ProductSortPrice:
		return "price ASC, id ASC"
	case constants.ProductSortPriceDesc:
		return "price DESC, id ASC"
	case constants.ProductSortNewest:
		return "created_at DESC, id DESC"
	default:
		return "name ASC, id ASC"
	}
}

// GetByID 根据 ID 获取商品（含下架）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetActiveByID 根据 ID 获取上架商品
func (r *GormProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").
		Where("is_active = ?", true).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListRelated 同分类相关商品（排除自身）
func (r *GormProductRepository) ListRelated(categoryID, excludeID uint, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = constants.RelatedProductsLimit
	}
	var products []models.Product
	if err := r.db.Where("category_id = ? AND id != ? AND is_active = ?", categoryID, excludeID, true).
		Order("sort_order DESC, created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// QuickSearch 按名称模糊搜索上架商品
func (r *GormProductRepository) QuickSearch(term string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = constants.QuickSearchLimit
	}
	like := "%" + strings.TrimSpace(term) + "%"
	var products []models.Product
	if err := r.db.Where(fmt.Sprintf("is_active = ? AND name %s ?", likeOperator(r.db)), true, like).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListFeatured 首页推荐商品
func (r *GormProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = constants.FeaturedProductsLimit
	}
	var products []models.Product
	if err := r.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("sort_order DESC, created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}
