package models

import (
	"time"
)

// CartItem 购物车项（按会话 cart_id 归属）
//
// 物理删除而非软删除：(cart_id, product_id) 唯一索引承担并发插入去重，
// 软删除残留行会持续占用该索引。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                      // 主键
	CartID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_product" json:"cart_id"`     // 购物车标识（会话签发）
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product;index" json:"product_id"`             // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                                  // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                   // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                                   // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal 行小计（数量 × 折后单价）
func (ci *CartItem) LineTotal() Money {
	if ci.Product == nil {
		return Money{}
	}
	unit := ci.Product.DiscountedPrice()
	return NewMoneyFromDecimal(unit.Decimal.Mul(decimalFromInt(ci.Quantity)))
}
