package main

import (
	"log"

	"github.com/autodrop-platform/autodrop/internal/config"
	"github.com/autodrop-platform/autodrop/internal/logger"
	"github.com/autodrop-platform/autodrop/internal/models"

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

	// 初始化游客占位用户
	if _, err := models.InitGuestUser(cfg.Auth.GuestUsername); err != nil {
		stdLog.Printf("Failed to init guest user: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Top deals", Slug: "top-deals", Icon: "fas fa-fire"},
		{Name: "Local", Slug: "local", Icon: "fas fa-map-marker-alt"},
		{Name: "Electronics", Slug: "electronics", Icon: "fas fa-laptop"},
		{Name: "Fashion", Slug: "fashion", Icon: "fas fa-tshirt"},
		{Name: "Beauty", Slug: "beauty", Icon: "fas fa-spa"},
		{Name: "Home", Slug: "home", Icon: "fas fa-home"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []seedProduct{
		{
			Title:         "Wireless Earbuds",
			Description:   "High-quality wireless earbuds with noise cancellation",
			Price:         "12.34",
			OriginalPrice: "16.99",
			Rating:        "4.5",
			RatingCount:   127,
			ImageURL:      "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug:  "electronics",
			AliexpressID:  "1005001234567890",
		},
		{
			Title:        "Mini Camera 4K",
			Description:  "Compact 4K action camera with waterproof housing",
			Price:        "33.60",
			Rating:       "4.8",
			RatingCount:  89,
			ImageURL:     "https://images.unsplash.com/photo-1606983340126-99ab4feaa64a?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug: "electronics",
			AliexpressID: "1005001234567891",
		},
		{
			Title:         "Men's Sports Watch",
			Description:   "Digital sports watch with fitness tracking features",
			Price:         "21.10",
			OriginalPrice: "26.00",
			Rating:        "4.3",
			RatingCount:   156,
			ImageURL:      "https://images.unsplash.com/photo-1523275335684-37898b6baf30?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug:  "fashion",
			AliexpressID:  "1005001234567892",
		},
		{
			Title:         "Argan Oil for Hair",
			Description:   "Organic argan oil for hair nourishment and repair",
			Price:         "7.80",
			OriginalPrice: "13.00",
			Rating:        "4.7",
			RatingCount:   203,
			ImageURL:      "https://images.unsplash.com/photo-1556228578-8c89e6adf883?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug:  "beauty",
			AliexpressID:  "1005001234567893",
		},
		{
			Title:         "Robot Vacuum Cleaner",
			Description:   "Smart robot vacuum with app control and mapping",
			Price:         "87.50",
			OriginalPrice: "120.99",
			Rating:        "4.6",
			RatingCount:   74,
			ImageURL:      "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug:  "home",
			AliexpressID:  "1005001234567894",
		},
		{
			Title:        "Bluetooth Car Kit",
			Description:  "Hands-free Bluetooth adapter for car audio systems",
			Price:        "15.95",
			Rating:       "4.2",
			RatingCount:  98,
			ImageURL:     "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug: "electronics",
			AliexpressID: "1005001234567895",
		},
		{
			Title:        "Yoga Leggings",
			Description:  "High-waisted yoga leggings with moisture-wicking fabric",
			Price:        "9.50",
			Rating:       "4.4",
			RatingCount:  167,
			ImageURL:     "https://images.unsplash.com/photo-1506629905607-c7dcd42c4f5b?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug: "fashion",
			AliexpressID: "1005001234567896",
		},
		{
			Title:        "LED Makeup Mirror",
			Description:  "Illuminated makeup mirror with adjustable brightness",
			Price:        "14.99",
			Rating:       "4.5",
			RatingCount:  134,
			ImageURL:     "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			CategorySlug: "beauty",
			AliexpressID: "1005001234567897",
		},
	}

	for _, p := range products {
		aliexpressID := p.AliexpressID
		var existing models.Product
		if err := models.DB.Where("aliexpress_id = ?", aliexpressID).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", p.Title)
			continue
		}

		product := models.Product{
			Title:        p.Title,
			Description:  p.Description,
			Price:        mustMoney(stdLog, p.Price),
			Rating:       mustDecimal(stdLog, p.Rating),
			RatingCount:  p.RatingCount,
			ImageURL:     p.ImageURL,
			AliexpressID: &aliexpressID,
			InStock:      true,
		}
		if p.OriginalPrice != "" {
			original := mustMoney(stdLog, p.OriginalPrice)
			product.OriginalPrice = &original
		}
		if id, ok := categoryIDs[p.CategorySlug]; ok {
			product.CategoryID = &id
		}

		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", p.Title, err)
		} else {
			stdLog.Printf("Created product: %s", p.Title)
		}
	}

	stdLog.Printf("Seed finished")
}

type seedProduct struct {
	Title         string
	Description   string
	Price         string
	OriginalPrice string
	Rating        string
	RatingCount   int
	ImageURL      string
	CategorySlug  string
	AliexpressID  string
}

func mustMoney(stdLog *log.Logger, value string) models.Money {
	money, err := models.NewMoneyFromString(value)
	if err != nil {
		stdLog.Fatalf("Invalid seed price %q: %v", value, err)
	}
	return money
}

func mustDecimal(stdLog *log.Logger, value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		stdLog.Fatalf("Invalid seed rating %q: %v", value, err)
	}
	return d
}
