package main

import (
	"github.com/agro-saffron/storefront/internal/config"
	"github.com/agro-saffron/storefront/internal/logger"
	"github.com/agro-saffron/storefront/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			Name:         "室内绿植",
			Description:  "适合室内摆放的观叶植物",
			ImageURL:     "https://images.unsplash.com/photo-1463320726281-696a485928c7?w=800",
			DisplayOrder: 1,
			IsActive:     true,
		},
		{
			Name:         "多肉植物",
			Description:  "易养护的多肉与仙人掌",
			ImageURL:     "https://images.unsplash.com/photo-1459411552884-841db9b3cc2a?w=800",
			DisplayOrder: 2,
			IsActive:     true,
		},
		{
			Name:         "花盆器皿",
			Description:  "陶瓷与水泥花盆",
			ImageURL:     "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=800",
			DisplayOrder: 3,
			IsActive:     true,
		},
		{
			Name:         "园艺工具",
			Description:  "浇水壶、铲子与修剪工具",
			ImageURL:     "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=800",
			DisplayOrder: 4,
			IsActive:     true,
		},
	}

	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Name)
			categoryIDs[cat.Name] = cat.ID
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
			categoryIDs[cat.Name] = existing.ID
		}
	}

	plantsID := categoryIDs["室内绿植"]
	succulentsID := categoryIDs["多肉植物"]
	potsID := categoryIDs["花盆器皿"]
	toolsID := categoryIDs["园艺工具"]

	// 添加商品
	products := []models.Product{
		{
			Name:          "龟背竹",
			Description:   "叶形独特的经典室内绿植，耐阴易养",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(89.00)),
			StockQuantity: 25,
			CategoryID:    plantsID,
			ImageURL:      "https://images.unsplash.com/photo-1614594975525-e45190c55d0b?w=800",
			Size:          "中型 / 60cm",
			IsActive:      true,
			IsFeatured:    true,
			SortOrder:     1,
		},
		{
			Name:          "琴叶榕",
			Description:   "大叶观赏植物，适合客厅角落",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(129.00)),
			StockQuantity: 12,
			CategoryID:    plantsID,
			ImageURL:      "https://images.unsplash.com/photo-1508022713622-df2d8fb7b4cd?w=800",
			Size:          "大型 / 120cm",
			IsActive:      true,
			IsFeatured:    true,
			SortOrder:     2,
		},
		{
			Name:               "绿萝吊篮",
			Description:        "净化空气的入门绿植，水培土培皆宜",
			Price:              models.NewMoneyFromDecimal(decimal.NewFromFloat(29.90)),
			DiscountPercentage: decimal.NewFromInt(15),
			StockQuantity:      60,
			CategoryID:         plantsID,
			ImageURL:           "https://images.unsplash.com/photo-1572688484438-313a6e50c333?w=800",
			Size:               "小型 / 25cm",
			IsActive:           true,
			SortOrder:          3,
		},
		{
			Name:          "玉露多肉拼盘",
			Description:   "六株组合拼盘，附陶瓷浅盆",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(45.00)),
			StockQuantity: 30,
			CategoryID:    succulentsID,
			ImageURL:      "https://images.unsplash.com/photo-1446071103084-c257b5f70672?w=800",
			Size:          "迷你 / 15cm",
			IsActive:      true,
			IsFeatured:    true,
			SortOrder:     1,
		},
		{
			Name:               "金琥仙人球",
			Description:        "耐旱皮实，一个月浇一次水即可",
			Price:              models.NewMoneyFromDecimal(decimal.NewFromFloat(35.00)),
			DiscountPercentage: decimal.NewFromInt(10),
			StockQuantity:      18,
			CategoryID:         succulentsID,
			ImageURL:           "https://images.unsplash.com/photo-1509587584298-0f3b3a3a1797?w=800",
			Size:               "小型 / 20cm",
			IsActive:           true,
			SortOrder:          2,
		},
		{
			Name:          "手工陶瓷花盆",
			Description:   "哑光釉面，带排水孔与托盘",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(58.00)),
			StockQuantity: 40,
			CategoryID:    potsID,
			ImageURL:      "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=800",
			Size:          "口径 18cm",
			IsActive:      true,
			SortOrder:     1,
		},
		{
			Name:          "水泥多肉盆三件套",
			Description:   "极简风水泥小盆，适合多肉与小型绿植",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(42.00)),
			StockQuantity: 0,
			CategoryID:    potsID,
			ImageURL:      "https://images.unsplash.com/photo-1446071103084-c257b5f70672?w=800",
			Size:          "口径 8cm x3",
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Name:          "长嘴浇水壶",
			Description:   "不锈钢长嘴设计，精准浇灌不积水",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(66.00)),
			StockQuantity: 22,
			CategoryID:    toolsID,
			ImageURL:      "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=800",
			Size:          "1.2L",
			IsActive:      true,
			SortOrder:     1,
		},
		{
			Name:          "园艺修剪剪刀",
			Description:   "碳钢刀刃，适合修枝与采收",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(39.00)),
			StockQuantity: 35,
			CategoryID:    toolsID,
			ImageURL:      "https://images.unsplash.com/photo-1585336261022-680e295ce3fe?w=800",
			Size:          "18cm",
			IsActive:      true,
			SortOrder:     2,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Name, err)
			} else {
				stdLog.Printf("Created product: %s", p.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.Name)
		}
	}

	stdLog.Printf("Seed finished")
}
