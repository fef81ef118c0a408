package provider

import (
	"time"

	"github.com/autodrop-platform/autodrop/internal/bots"
	"github.com/autodrop-platform/autodrop/internal/cache"
	"github.com/autodrop-platform/autodrop/internal/config"
	"github.com/autodrop-platform/autodrop/internal/llm"
	"github.com/autodrop-platform/autodrop/internal/logger"
	"github.com/autodrop-platform/autodrop/internal/messaging/sendgrid"
	"github.com/autodrop-platform/autodrop/internal/messaging/twilio"
	"github.com/autodrop-platform/autodrop/internal/models"
	"github.com/autodrop-platform/autodrop/internal/payment/stripe"
	"github.com/autodrop-platform/autodrop/internal/queue"
	"github.com/autodrop-platform/autodrop/internal/repository"
	"github.com/autodrop-platform/autodrop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository

	// Services
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	OrderService    *service.OrderService
	ImportService   *service.ImportService

	// Bots
	EmailBot    *bots.EmailBot
	SMSPhoneBot *bots.SMSPhoneBot
	AdBot       *bots.AdBot

	// Messaging
	Mailer bots.EmailSender
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services 与 Bots
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.CatalogService = service.NewCatalogService(c.CategoryRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.ImportService = service.NewImportService(c.ProductRepo, c.CategoryRepo)

	var gateway service.PaymentGateway
	if c.Config.Stripe.Configured() {
		gateway = stripe.NewGateway(&stripe.Config{
			SecretKey:     c.Config.Stripe.SecretKey,
			WebhookSecret: c.Config.Stripe.WebhookSecret,
			APIBaseURL:    c.Config.Stripe.APIBaseURL,
		})
	} else {
		logger.Warnw("provider_stripe_not_configured", "checkout", "disabled")
	}
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.OrderRepo, c.CartRepo, gateway, c.Config.Checkout.BaseURL, c.Config.Checkout.Currency)

	var notifier service.OrderNotifier
	if c.QueueClient.Enabled() {
		notifier = c.QueueClient
	}
	c.OrderService = service.NewOrderService(c.OrderRepo, notifier)

	var completer bots.ChatCompleter
	if c.Config.OpenAI.Configured() {
		client, err := llm.NewClient(llm.Config{
			APIKey:     c.Config.OpenAI.APIKey,
			Model:      c.Config.OpenAI.Model,
			APIBaseURL: c.Config.OpenAI.APIBaseURL,
			Timeout:    time.Duration(c.Config.OpenAI.TimeoutMS) * time.Millisecond,
		})
		if err != nil {
			logger.Errorw("provider_init_llm_failed", "error", err)
		} else {
			completer = client
		}
	} else {
		logger.Warnw("provider_openai_not_configured", "bots", "fallback_only")
	}

	var mailer bots.EmailSender
	if c.Config.SendGrid.Configured() {
		client, err := sendgrid.NewClient(sendgrid.Config{
			APIKey:     c.Config.SendGrid.APIKey,
			FromEmail:  c.Config.SendGrid.FromEmail,
			APIBaseURL: c.Config.SendGrid.APIBaseURL,
		})
		if err != nil {
			logger.Errorw("provider_init_sendgrid_failed", "error", err)
		} else {
			mailer = client
		}
	} else {
		logger.Infow("provider_sendgrid_not_configured", "email_relay", "disabled")
	}

	var smsSender bots.SMSSender
	phoneNumber := ""
	if c.Config.Twilio.Configured() {
		client, err := twilio.NewClient(twilio.Config{
			AccountSID:  c.Config.Twilio.AccountSID,
			AuthToken:   c.Config.Twilio.AuthToken,
			PhoneNumber: c.Config.Twilio.PhoneNumber,
			APIBaseURL:  c.Config.Twilio.APIBaseURL,
		})
		if err != nil {
			logger.Errorw("provider_init_twilio_failed", "error", err)
		} else {
			smsSender = client
			phoneNumber = c.Config.Twilio.PhoneNumber
		}
	} else {
		logger.Infow("provider_twilio_not_configured", "sms_relay", "disabled")
	}

	c.Mailer = mailer
	c.EmailBot = bots.NewEmailBot(completer, mailer)
	c.SMSPhoneBot = bots.NewSMSPhoneBot(completer, smsSender, phoneNumber)
	c.AdBot = bots.NewAdBot(completer)
}
