package model

import "time"

// CreatedModel 只记录创建时间的表（clients）
type CreatedModel struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BaseModel 通用审计字段（users）
type BaseModel struct {
	CreatedModel
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
