package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项；(user_id, product_id) 的唯一性在应用层通过合并数量保证
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                     // 主键
	UserID    uint           `gorm:"not null;index" json:"user_id"`            // 用户ID
	ProductID uint           `gorm:"not null;index" json:"product_id"`         // 商品ID
	Quantity  int            `gorm:"not null" json:"quantity"`                 // 数量（始终 >= 1，降为 0 时删除行）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                  // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
