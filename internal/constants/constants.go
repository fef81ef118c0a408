package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCanceled  = "canceled"
	OrderStatusFulfilled = "fulfilled"
)

// 机器人询盘分类常量
const (
	InquiryCategoryOrderStatus = "order_status"
	InquiryCategoryProductInfo = "product_info"
	InquiryCategoryReturns     = "returns"
	InquiryCategoryShipping    = "shipping"
	InquiryCategoryTechnical   = "technical"
	InquiryCategoryGeneral     = "general"
)

// 广告投放平台常量
const (
	AdPlatformFacebook  = "facebook"
	AdPlatformGoogle    = "google"
	AdPlatformInstagram = "instagram"
	AdPlatformTwitter   = "twitter"
	AdPlatformEmail     = "email"
)

// 页面装饰主题常量
const (
	DecorationThemeModern   = "modern"
	DecorationThemeSeasonal = "seasonal"
	DecorationThemeUrgent   = "urgent"
	DecorationThemeLuxury   = "luxury"
	DecorationThemeTech     = "tech-focused"
)

// 邮件营销活动类型常量
const (
	CampaignTypeWelcome       = "welcome"
	CampaignTypeAbandonedCart = "abandoned_cart"
	CampaignTypePromotion     = "promotion"
	CampaignTypeNewsletter    = "newsletter"
)

// 队列常量
const (
	QueueDefault = "default"

	TaskInboundSMS      = "bots:inbound_sms"
	TaskOrderPaidNotify = "orders:paid_notify"
)

// 默认游客用户名（未携带身份令牌时的占位身份）
const GuestUsername = "guest"
