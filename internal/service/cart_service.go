package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agro-saffron/storefront/internal/constants"
	"github.com/agro-saffron/storefront/internal/logger"
	"github.com/agro-saffron/storefront/internal/models"
	"github.com/agro-saffron/storefront/internal/repository"
	"github.com/agro-saffron/storefront/internal/session"
)

// CartItemView 购物车项视图（用于响应）
type CartItemView struct {
	ID            uint            `json:"id"`
	ProductID     uint            `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     models.Money    `json:"unit_price"`
	OriginalPrice models.Money    `json:"original_price"`
	LineTotal     models.Money    `json:"line_total"`
	Product       *models.Product `json:"product"`
}

// CartView 购物车整体视图
type CartView struct {
	Items []CartItemView `json:"items"`
	Total models.Money   `json:"total"`
	Count int64          `json:"count"`
}

// CartService 购物车服务。购物车以会话签发的 cart_id 为归属，
// 所有操作先解析 cart_id，首次访问时惰性创建。
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// resolveCartID 从会话取出购物车标识，没有则签发并写回
func (s *CartService) resolveCartID(ctx context.Context, sess *session.Session) (string, error) {
	if sess == nil {
		return "", ErrInvalidInput
	}
	cartID, ok, err := sess.Get(ctx, constants.SessionKeyCartID)
	if err != nil {
		return "", err
	}
	if ok && cartID != "" {
		return cartID, nil
	}
	cartID = uuid.NewString()
	if err := sess.Set(ctx, constants.SessionKeyCartID, cartID); err != nil {
		return "", err
	}
	return cartID, nil
}

// AddItem 加购：商品不可购（不存在/下架/零库存）返回 ErrProductUnavailable，
// 否则原子插入或累加，数量在库存上限处截断。
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, productID uint, quantity int) error {
	if productID == 0 || quantity < 1 {
		return ErrInvalidInput
	}
	cartID, err := s.resolveCartID(ctx, sess)
	if err != nil {
		return err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.Purchasable() {
		return ErrProductUnavailable
	}
	return s.cartRepo.AddWithClamp(cartID, productID, quantity, product.StockQuantity)
}

// UpdateQuantity 调整购物车项数量。数量小于 1 等价于删除；
// 项不存在为空操作；商品已失效时移除该行；
// 截断后数量小于 1（库存清零）同样移除。
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, itemID uint, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, sess, itemID)
	}
	cartID, err := s.resolveCartID(ctx, sess)
	if err != nil {
		return err
	}
	item, err := s.cartRepo.GetByID(cartID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}
	product := item.Product
	if product == nil || !product.IsActive {
		return s.cartRepo.DeleteByID(cartID, itemID)
	}
	if quantity > product.StockQuantity {
		quantity = product.StockQuantity
	}
	if quantity < 1 {
		return s.cartRepo.DeleteByID(cartID, itemID)
	}
	return s.cartRepo.UpdateQuantity(item.ID, quantity)
}

// RemoveItem 删除购物车项，不存在为空操作
func (s *CartService) RemoveItem(ctx context.Context, sess *session.Session, itemID uint) error {
	cartID, err := s.resolveCartID(ctx, sess)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteByID(cartID, itemID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sess *session.Session) error {
	cartID, err := s.resolveCartID(ctx, sess)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearByCart(cartID)
}

// List 获取购物车视图：按加入顺序列出各项，商品已失效的行顺带清理
func (s *CartService) List(ctx context.Context, sess *session.Session) (*CartView, error) {
	cartID, err := s.resolveCartID(ctx, sess)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListByCart(cartID)
	if err != nil {
		return nil, err
	}

	views := make([]CartItemView, 0, len(items))
	total := decimal.Zero
	var count int64
	for i := range items {
		item := &items[i]
		product := item.Product
		if product == nil || product.ID == 0 || !product.IsActive {
			if err := s.cartRepo.DeleteByID(cartID, item.ID); err != nil {
				logger.Warnw("cart_prune_stale_item_failed",
					"cart_id", cartID,
					"item_id", item.ID,
					"error", err,
				)
			}
			continue
		}
		view := newCartItemView(item)
		total = total.Add(view.LineTotal.Decimal)
		count += int64(item.Quantity)
		views = append(views, view)
	}

	return &CartView{
		Items: views,
		Total: models.NewMoneyFromDecimal(total),
		Count: count,
	}, nil
}

// Count 购物车商品总件数
func (s *CartService) Count(ctx context.Context, sess *session.Session) (int64, error) {
	cartID, err := s.resolveCartID(ctx, sess)
	if err != nil {
		return 0, err
	}
	return s.cartRepo.SumQuantity(cartID)
}

// GetItem 获取购物车内单项，不存在返回 nil
func (s *CartService) GetItem(ctx context.Context, sess *session.Session, itemID uint) (*CartItemView, error) {
	cartID, err := s.resolveCartID(ctx, sess)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetByID(cartID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	view := newCartItemView(item)
	return &view, nil
}

func newCartItemView(item *models.CartItem) CartItemView {
	unitPrice := item.Product.DiscountedPrice()
	return CartItemView{
		ID:            item.ID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		UnitPrice:     unitPrice,
		OriginalPrice: item.Product.Price,
		LineTotal:     item.LineTotal(),
		Product:       item.Product,
	}
}
