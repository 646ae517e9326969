package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agro-saffron/storefront/internal/constants"
)

// Product 商品表
type Product struct {
	ID                 uint            `gorm:"primarykey" json:"id"`                                          // 主键
	CategoryID         uint            `gorm:"not null;index" json:"category_id"`                             // 分类ID
	Name               string          `gorm:"type:varchar(200);not null;index" json:"name"`                  // 商品名称
	Description        string          `gorm:"type:text" json:"description"`                                  // 商品描述
	Price              Money           `gorm:"type:decimal(18,2);not null;default:0" json:"price"`            // 原价
	StockQuantity      int             `gorm:"not null;default:0" json:"stock_quantity"`                      // 库存数量
	ImageURL           string          `gorm:"type:varchar(500)" json:"image_url"`                            // 商品图片
	Size               string          `gorm:"type:varchar(50)" json:"size"`                                  // 规格（如花盆尺寸）
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"` // 折扣百分比（0-100）
	IsActive           bool            `gorm:"default:true;index" json:"is_active"`                           // 是否上架
	IsFeatured         bool            `gorm:"default:false;index" json:"is_featured"`                        // 是否首页推荐
	SortOrder          int             `gorm:"default:0;index" json:"sort_order"`                             // 排序权重
	CreatedAt          time.Time       `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt          time.Time       `json:"updated_at"`                                                    // 更新时间
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`                                                // 软删除时间

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsOnSale 是否处于折扣中
func (p *Product) IsOnSale() bool {
	return p.DiscountPercentage.IsPositive()
}

// DiscountedPrice 折后单价（无折扣时等于原价）
func (p *Product) DiscountedPrice() Money {
	if !p.IsOnSale() {
		return p.Price
	}
	ratio := decimal.NewFromInt(100).Sub(p.DiscountPercentage).Div(decimal.NewFromInt(100))
	return NewMoneyFromDecimal(p.Price.Decimal.Mul(ratio))
}

// StockStatus 库存状态（有货/少量/缺货）
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity <= 0:
		return constants.ProductStockStatusOutOfStock
	case p.StockQuantity <= constants.ProductLowStockLimit:
		return constants.ProductStockStatusLowStock
	default:
		return constants.ProductStockStatusInStock
	}
}

// Purchasable 是否可加入购物车
func (p *Product) Purchasable() bool {
	return p.IsActive && p.StockQuantity > 0
}
