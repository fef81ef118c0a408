package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表；items 与 total_amount 在创建时冻结，不跟随商品后续调价
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                  // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                  // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                         // 用户ID
	StripeSessionID string         `gorm:"type:varchar(255);index" json:"stripe_session_id"`      // 支付会话引用
	Status          string         `gorm:"index;not null" json:"status"`                          // 订单状态
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付金额
	Items           JSONArray      `gorm:"type:json" json:"items"`                                // 下单时的购物车快照
	ShippingAddress JSON           `gorm:"type:json" json:"shipping_address"`                     // 收货地址
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
