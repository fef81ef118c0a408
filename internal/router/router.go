package router

import (
	"fmt"
	"strings"

	"github.com/autodrop-platform/autodrop/internal/cache"
	"github.com/autodrop-platform/autodrop/internal/config"
	publichandlers "github.com/autodrop-platform/autodrop/internal/http/handlers/public"
	"github.com/autodrop-platform/autodrop/internal/logger"
	"github.com/autodrop-platform/autodrop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)

	guestUserID := resolveGuestUserID(c, cfg.Auth.GuestUsername)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ad"
	}
	botsRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:bots", redisPrefix),
		WindowSeconds: cfg.RateLimit.Bots.WindowSeconds,
		MaxRequests:   cfg.RateLimit.Bots.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(IdentityMiddleware(cfg.Auth.JWTSecret, guestUserID))

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)

		// 商品与分类
		api.GET("/categories", handler.ListCategories)
		api.GET("/products", handler.ListProducts)
		api.GET("/products/:id", handler.GetProduct)
		api.GET("/search", handler.SearchProducts)

		// 货源市场导入
		api.POST("/aliexpress/import", handler.ImportProduct)

		// 购物车
		api.GET("/cart/:userId", handler.GetCart)
		api.POST("/cart", handler.AddCartItem)
		api.PUT("/cart/:id", handler.UpdateCartItem)
		api.DELETE("/cart/:id", handler.RemoveCartItem)

		// 结算与订单
		api.POST("/checkout", handler.Checkout)
		api.GET("/orders/:userId", handler.ListOrders)

		// 机器人接口（LLM 调用按 IP 限流）
		bots := api.Group("/bots")
		bots.Use(RateLimitMiddleware(cache.Client(), botsRule, KeyByIP))
		{
			bots.POST("/email", handler.EmailBotInquiry)
			bots.POST("/sms", handler.SMSBotInquiry)
			bots.GET("/phone-number", handler.BotPhoneNumber)
			bots.POST("/ads/product/:productId", handler.GenerateProductAd)
			bots.POST("/social/product/:productId", handler.GenerateSocialContent)
			bots.POST("/decorations", handler.GeneratePageDecorations)
			bots.POST("/email-campaign", handler.GenerateEmailCampaign)
		}

		// 回调
		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/stripe", handler.StripeWebhook)
			webhooks.POST("/twilio/sms", handler.TwilioSMSWebhook)
		}
	}

	return r
}

func resolveGuestUserID(c *provider.Container, guestUsername string) uint {
	guestUsername = strings.TrimSpace(guestUsername)
	if guestUsername == "" || c == nil || c.UserRepo == nil {
		return 0
	}
	guest, err := c.UserRepo.GetByUsername(guestUsername)
	if err != nil {
		logger.Warnw("router_guest_user_lookup_failed", "username", guestUsername, "error", err)
		return 0
	}
	if guest == nil {
		logger.Warnw("router_guest_user_missing", "username", guestUsername)
		return 0
	}
	return guest.ID
}
