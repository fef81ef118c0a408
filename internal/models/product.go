package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint            `gorm:"primarykey" json:"id"`                                   // 主键
	Title         string          `gorm:"type:varchar(300);not null;index" json:"title"`          // 标题
	Description   string          `gorm:"type:text" json:"description"`                           // 描述
	Price         Money           `gorm:"type:decimal(20,2);not null;default:0" json:"price"`     // 售价
	OriginalPrice *Money          `gorm:"type:decimal(20,2)" json:"original_price,omitempty"`     // 折前价（可空）
	Rating        decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`     // 评分
	RatingCount   int             `gorm:"not null;default:0" json:"rating_count"`                 // 评分人数
	ImageURL      string          `gorm:"type:varchar(500)" json:"image_url"`                     // 主图地址
	CategoryID    *uint           `gorm:"index" json:"category_id,omitempty"`                     // 分类ID（可空）
	AliexpressID  *string         `gorm:"type:varchar(64);uniqueIndex" json:"aliexpress_id,omitempty"` // 货源市场商品ID（存在时唯一，导入去重键）
	InStock       bool            `gorm:"not null;default:true" json:"in_stock"`                  // 是否有货
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time       `json:"updated_at"`                                             // 更新时间
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`                                         // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
