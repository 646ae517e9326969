package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agro-saffron/storefront/internal/models"
	"github.com/agro-saffron/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewProductService(productRepo), NewCategoryService(categoryRepo, productRepo), db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:    categoryID,
		Name:          name,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductListForcesActiveAndNormalizesPaging(t *testing.T) {
	svc, _, db := setupProductServiceTest(t)
	category := seedCategory(t, db, "绿植")
	seedProduct(t, db, category.ID, "商品 A", 10, 5)
	inactive := seedProduct(t, db, category.ID, "商品 B", 10, 5)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	// 非法分页参数被归一化，下架商品不出现
	products, total, err := svc.List(repository.ProductListFilter{Page: -1, PageSize: 0})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("total want 1 got %d", total)
	}
	if len(products) != 1 || products[0].Name != "商品 A" {
		t.Fatalf("unexpected products %v", products)
	}
	if products[0].Category.ID != category.ID {
		t.Fatalf("category should be preloaded")
	}
}

func TestGetDetailReturnsRelatedAndNotFound(t *testing.T) {
	svc, _, db := setupProductServiceTest(t)
	category := seedCategory(t, db, "绿植")
	product := seedProduct(t, db, category.ID, "龟背竹", 89, 5)
	sibling := seedProduct(t, db, category.ID, "琴叶榕", 129, 5)

	detail, err := svc.GetDetail(product.ID)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail.Product.ID != product.ID {
		t.Fatalf("detail product want %d got %d", product.ID, detail.Product.ID)
	}
	if len(detail.Related) != 1 || detail.Related[0].ID != sibling.ID {
		t.Fatalf("related want only sibling, got %v", detail.Related)
	}

	if _, err := svc.GetDetail(0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("zero id want ErrNotFound got %v", err)
	}
	if _, err := svc.GetDetail(99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id want ErrNotFound got %v", err)
	}

	if err := db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.GetDetail(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive product want ErrNotFound got %v", err)
	}
}

func TestQuickSearchRequiresMinimumTerm(t *testing.T) {
	svc, _, db := setupProductServiceTest(t)
	category := seedCategory(t, db, "绿植")
	seedProduct(t, db, category.ID, "龟背竹", 89, 5)

	summaries, err := svc.QuickSearch("龟")
	if err != nil {
		t.Fatalf("short term search failed: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("short term want empty result got %d", len(summaries))
	}

	summaries, err = svc.QuickSearch("  龟背  ")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("search want 1 got %d", len(summaries))
	}
	if summaries[0].Name != "龟背竹" {
		t.Fatalf("search result want 龟背竹 got %s", summaries[0].Name)
	}
	if summaries[0].StockStatus == "" {
		t.Fatalf("stock status should be populated")
	}
}

func TestCategoryProductsPage(t *testing.T) {
	_, svc, db := setupProductServiceTest(t)
	category := seedCategory(t, db, "绿植")
	other := seedCategory(t, db, "花盆")
	seedProduct(t, db, category.ID, "商品 A", 10, 5)
	seedProduct(t, db, category.ID, "商品 B", 20, 5)
	seedProduct(t, db, other.ID, "别类商品", 30, 5)

	page, err := svc.ProductsPage(category.ID, 1, 10)
	if err != nil {
		t.Fatalf("products page failed: %v", err)
	}
	if page.Category.ID != category.ID {
		t.Fatalf("category want %d got %d", category.ID, page.Category.ID)
	}
	if page.Total != 2 {
		t.Fatalf("total want 2 got %d", page.Total)
	}
	for _, p := range page.Products {
		if p.CategoryID != category.ID {
			t.Fatalf("unexpected category %d for %s", p.CategoryID, p.Name)
		}
	}

	if _, err := svc.ProductsPage(0, 1, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("zero category want ErrNotFound got %v", err)
	}
	if _, err := svc.ProductsPage(99999, 1, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing category want ErrNotFound got %v", err)
	}
}
