package repository

import (
	"errors"
	"time"

	"github.com/agro-saffron/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByCart(cartID string) ([]models.CartItem, error)
	GetByID(cartID string, itemID uint) (*models.CartItem, error)
	AddWithClamp(cartID string, productID uint, quantity, stock int) error
	UpdateQuantity(itemID uint, quantity int) error
	DeleteByID(cartID string, itemID uint) error
	ClearByCart(cartID string) error
	SumQuantity(cartID string) (int64, error)
	DeleteStale(before time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByCart 获取购物车全部项，按加入顺序排列
func (r *GormCartRepository) ListByCart(cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Product.Category").
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 获取购物车内指定项（带商品），不存在返回 nil
func (r *GormCartRepository) GetByID(cartID string, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").
		Where("cart_id = ? AND id = ?", cartID, itemID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// AddWithClamp 原子加购：依赖 (cart_id, product_id) 唯一索引做
// 插入或累加，同一事务内把超出库存的数量压回库存上限。
// 并发加购由数据库唯一索引收敛，不需要应用层先查后写。
func (r *GormCartRepository) AddWithClamp(cartID string, productID uint, quantity, stock int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		item := models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				// 未限定列名指向冲突的既有行，sqlite 与 postgres 语义一致
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": time.Now(),
			}),
		}).Create(&item).Error; err != nil {
			return err
		}
		return tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ? AND quantity > ?", cartID, productID, stock).
			Update("quantity", stock).Error
	})
}

// UpdateQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteByID 删除购物车内指定项，不存在为空操作
func (r *GormCartRepository) DeleteByID(cartID string, itemID uint) error {
	return r.db.Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&models.CartItem{}).Error
}

// ClearByCart 清空购物车
func (r *GormCartRepository) ClearByCart(cartID string) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// SumQuantity 统计购物车内商品总件数
func (r *GormCartRepository) SumQuantity(cartID string) (int64, error) {
	var total int64
	if err := r.db.Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteStale 删除长期未更新的购物车项（会话早已过期的遗留行）
func (r *GormCartRepository) DeleteStale(before time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", before).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
