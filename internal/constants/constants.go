package constants

// 会话相关常量
const (
	// SessionKeyCartID 购物车标识在会话中的存储键
	SessionKeyCartID = "cart_id"
)

// 商品排序常量
const (
	ProductSortName      = "name"
	ProductSortNameDesc  = "name_desc"
	ProductSortPrice     = "price"
	ProductSortPriceDesc = "price_desc"
	ProductSortNewest    = "newest"
)

// 商品库存状态常量
const (
	ProductStockStatusInStock    = "in_stock"
	ProductStockStatusLowStock   = "low_stock"
	ProductStockStatusOutOfStock = "out_of_stock"
)

// 订单状态常量（占位实体，本服务不创建订单）
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusShipped  = "shipped"
	OrderStatusCanceled = "canceled"
)

// 队列常量
const (
	QueueDefault = "default"

	// TaskCartPurgeStale 清理长期未更新购物车项的任务
	TaskCartPurgeStale = "cart:purge_stale"
)

// 列表与分页默认值
const (
	DefaultPageSize       = 12
	MaxPageSize           = 100
	QuickSearchLimit      = 10
	QuickSearchMinChars   = 2
	RelatedProductsLimit  = 4
	FeaturedProductsLimit = 8
	ProductLowStockLimit  = 5
)
