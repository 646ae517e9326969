package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（占位实体：本服务只迁移表结构，不创建订单）
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                               // 主键
	OrderNo       string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"` // 订单号
	Status        string         `gorm:"type:varchar(20);not null;index" json:"status"`      // 订单状态
	CustomerName  string         `gorm:"type:varchar(100)" json:"customer_name"`             // 客户姓名
	CustomerEmail string         `gorm:"type:varchar(200);index" json:"customer_email"`      // 客户邮箱
	ShippingAddr  string         `gorm:"type:varchar(500)" json:"shipping_address"`          // 收货地址
	TotalAmount   Money          `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"` // 订单总额
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项（下单时的价格快照）
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 主键
	OrderID     uint      `gorm:"not null;index" json:"order_id"`                    // 订单ID
	ProductID   uint      `gorm:"not null;index" json:"product_id"`                  // 商品ID
	ProductName string    `gorm:"type:varchar(200);not null" json:"product_name"`    // 商品名称快照
	UnitPrice   Money     `gorm:"type:decimal(18,2);not null" json:"unit_price"`     // 成交单价快照
	Quantity    int       `gorm:"not null" json:"quantity"`                          // 数量
	CreatedAt   time.Time `json:"created_at"`                                        // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
