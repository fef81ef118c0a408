package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// JSON 通用 JSON 对象类型，用于存储订单快照、收货地址等
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// JSONArray JSON 数组类型，用于存储订单项快照
type JSONArray []map[string]interface{}

// Value 实现 driver.Valuer 接口
func (a JSONArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan 实现 sql.Scanner 接口
func (a *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// Category 分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`               // 主键
	Name      string         `gorm:"type:varchar(100);not null" json:"name"` // 分类名称
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`   // 唯一标识
	Icon      string         `gorm:"type:varchar(100)" json:"icon"`      // 分类图标
	CreatedAt time.Time      `gorm:"index" json:"created_at"`            // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                     // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
