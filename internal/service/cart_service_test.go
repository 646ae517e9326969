package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agro-saffron/storefront/internal/models"
	"github.com/agro-saffron/storefront/internal/repository"
	"github.com/agro-saffron/storefront/internal/session"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cartServiceFixture struct {
	db          *gorm.DB
	store       *session.MemoryStore
	cartService *CartService
}

func setupCartServiceTest(t *testing.T) *cartServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return &cartServiceFixture{
		db:          db,
		store:       session.NewMemoryStore(30 * time.Minute),
		cartService: NewCartService(cartRepo, productRepo),
	}
}

func (f *cartServiceFixture) newSession(token string) *session.Session {
	return session.New(token, f.store)
}

func (f *cartServiceFixture) createProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:    1,
		Name:          name,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *cartServiceFixture) deactivateProduct(t *testing.T, product *models.Product) {
	t.Helper()
	if err := f.db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
}

func TestAddItemAccumulatesAndClampsToStock(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	sess := f.newSession("sess-1")
	product := f.createProduct(t, "龟背竹", 89, 5)

	if err := f.cartService.AddItem(ctx, sess, product.ID, 3); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := f.cartService.AddItem(ctx, sess, product.ID, 4); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	view, err := f.cartService.List(ctx, sess)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("cart lines want 1 got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("quantity want clamped 5 got %d", view.Items[0].Quantity)
	}
	if view.Count != 5 {
		t.Fatalf("count want 5 got %d", view.Count)
	}
}

func TestAddItemRejectsUnavailableProduct(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	sess := f.newSession("sess-1")

	if err := f.cartService.AddItem(ctx, sess, 99999, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("missing product want ErrProductUnavailable got %v", err)
	}

	inactive := f.createProduct(t, "下架商品", 10, 5)
	f.deactivateProduct(t, inactive)
	if err := f.cartService.AddItem(ctx, sess, inactive.ID, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("inactive product want ErrProductUnavailable got %v", err)
	}

	soldOut := f.createProduct(t, "零库存商品", 10, 0)
	if err := f.cartService.AddItem(ctx, sess, soldOut.ID, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("sold-out product want ErrProductUnavailable got %v", err)
	}

	if err := f.cartService.AddItem(ctx, sess, 0, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero product id want ErrInvalidInput got %v", err)
	}
	product := f.createProduct(t, "正常商品", 10, 5)
	if err := f.cartService.AddItem(ctx, sess, product.ID, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero quantity want ErrInvalidInput got %v", err)
	}
}

func TestUpdateQuantityClampsAndRemoves(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	sess := f.newSession("sess-1")
	product := f.createProduct(t, "琴叶榕", 129, 5)

	if err := f.cartService.AddItem(ctx, sess, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := f.cartService.List(ctx, sess)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	itemID := view.Items[0].ID

	// 超出库存压回上限
	if err := f.cartService.UpdateQuantity(ctx, sess, itemID, 99); err != nil {
		t.Fatalf("update over stock failed: %v", err)
	}
	item, err := f.cartService.GetItem(ctx, sess, itemID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity want clamped 5 got %d", item.Quantity)
	}

	// 数量小于 1 等价删除
	if err := f.cartService.UpdateQuantity(ctx, sess, itemID, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	item, err = f.cartService.GetItem(ctx, sess, itemID)
	if err != nil {
		t.Fatalf("get removed item failed: %v", err)
	}
	if item != nil {
		t.Fatalf("item should be removed")
	}

	// 不存在的项为空操作
	if err := f.cartService.UpdateQuantity(ctx, sess, 99999, 3); err != nil {
		t.Fatalf("update absent item should be no-op, got %v", err)
	}
}

func TestUpdateQuantityRemovesLineWhenProductGone(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	sess := f.newSession("sess-1")
	product := f.createProduct(t, "绿萝", 29.9, 5)

	if err := f.cartService.AddItem(ctx, sess, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := f.cartService.List(ctx, sess)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	itemID := view.Items[0].ID

	f.deactivateProduct(t, product)
	if err := f.cartService.UpdateQuantity(ctx, sess, itemID, 3); err != nil {
		t.Fatalf("update with inactive product failed: %v", err)
	}

	var count int64
	if err := f.db.Model(&models.CartItem{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
		t.Fatalf("count line failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("line with inactive product should be removed")
	}
}

func TestListTotalsUseDiscountedPrice(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	sess := f.newSession("sess-1")

	plain := f.createProduct(t, "原价商品", 10, 10)
	discounted := f.createProduct(t, "折扣商品", 100, 10)
	if err := f.db.Model(discounted).Update("discount_percentage", decimal.NewFromInt(25)).Error; err != nil {
		t.Fatalf("set discount failed: %v", err)
	}

	if err := f.cartService.AddItem(ctx, sess, plain.ID, 1); err != nil {
		t.Fatalf("add plain failed: %v", err)
	}
	if err := f.cartService.AddItem(ctx, sess, discounted.ID, 2); err != nil {
		t.Fatalf("add discounted failed: %v", err)
	}

	view, err := f.cartService.List(ctx, sess)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("cart lines want 2 got %d", len(view.Items))
	}
	if view.Count != 3 {
		t.Fatalf("count want 3 got %d", view.Count)
	}
	// 10*1 + 75*2 = 160
	if !view.Total.Decimal.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("total want 160 got %s", view.Total.Decimal.String())
	}

	for _, item := range view.Items {
		if item.ProductID != discounted.ID {
			continue
		}
		if !item.UnitPrice.Decimal.Equal(decimal.NewFromInt(75)) {
			t.Fatalf("discounted unit price want 75 got %s", item.UnitPrice.Decimal.String())
		}
		if !item.OriginalPrice.Decimal.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("original price want 100 got %s", item.OriginalPrice.Decimal.String())
		}
		if !item.LineTotal.Decimal.Equal(decimal.NewFromInt(150)) {
			t.Fatalf("line total want 150 got %s", item.LineTotal.Decimal.String())
		}
	}
}

func TestListPrunesLinesForInactiveProducts(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	sess := f.newSession("sess-1")

	keep := f.createProduct(t, "保留商品", 10, 10)
	gone := f.createProduct(t, "失效商品", 10, 10)

	if err := f.cartService.AddItem(ctx, sess, keep.ID, 1); err != nil {
		t.Fatalf("add keep failed: %v", err)
	}
	if err := f.cartService.AddItem(ctx, sess, gone.ID, 1); err != nil {
		t.Fatalf("add gone failed: %v", err)
	}

	f.deactivateProduct(t, gone)

	view, err := f.cartService.List(ctx, sess)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("cart lines want 1 got %d", len(view.Items))
	}
	if view.Items[0].ProductID != keep.ID {
		t.Fatalf("surviving line want product %d got %d", keep.ID, view.Items[0].ProductID)
	}

	// 失效行应被顺带清掉
	var count int64
	if err := f.db.Model(&models.CartItem{}).Where("product_id = ?", gone.ID).Count(&count).Error; err != nil {
		t.Fatalf("count pruned line failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("pruned line should be deleted from db")
	}
}

func TestCartsAreSessionScoped(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	alice := f.newSession("sess-alice")
	bob := f.newSession("sess-bob")
	product := f.createProduct(t, "共享商品", 10, 10)

	if err := f.cartService.AddItem(ctx, alice, product.ID, 2); err != nil {
		t.Fatalf("alice add failed: %v", err)
	}
	if err := f.cartService.AddItem(ctx, bob, product.ID, 5); err != nil {
		t.Fatalf("bob add failed: %v", err)
	}

	aliceCount, err := f.cartService.Count(ctx, alice)
	if err != nil {
		t.Fatalf("alice count failed: %v", err)
	}
	if aliceCount != 2 {
		t.Fatalf("alice count want 2 got %d", aliceCount)
	}
	bobCount, err := f.cartService.Count(ctx, bob)
	if err != nil {
		t.Fatalf("bob count failed: %v", err)
	}
	if bobCount != 5 {
		t.Fatalf("bob count want 5 got %d", bobCount)
	}

	if err := f.cartService.Clear(ctx, alice); err != nil {
		t.Fatalf("alice clear failed: %v", err)
	}
	aliceCount, err = f.cartService.Count(ctx, alice)
	if err != nil {
		t.Fatalf("alice count after clear failed: %v", err)
	}
	if aliceCount != 0 {
		t.Fatalf("alice count after clear want 0 got %d", aliceCount)
	}
	bobCount, err = f.cartService.Count(ctx, bob)
	if err != nil {
		t.Fatalf("bob count after alice clear failed: %v", err)
	}
	if bobCount != 5 {
		t.Fatalf("bob cart should be untouched, count got %d", bobCount)
	}
}

func TestGetItemAbsentReturnsNil(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()
	sess := f.newSession("sess-1")

	item, err := f.cartService.GetItem(ctx, sess, 12345)
	if err != nil {
		t.Fatalf("get absent item failed: %v", err)
	}
	if item != nil {
		t.Fatalf("absent item want nil")
	}

	if err := f.cartService.RemoveItem(ctx, sess, 12345); err != nil {
		t.Fatalf("remove absent item should be no-op, got %v", err)
	}
}
