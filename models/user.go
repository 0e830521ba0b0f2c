package models

import "gorm.io/gorm"

// User 平台用户；Experience 为只增不减的累计经验计数器，
// 等级/进度不落库，读取时由 leveling 包按该计数器推导
type User struct {
	gorm.Model
	Username   string `gorm:"unique;size:64" json:"username"`
	Password   string `json:"-"`
	Bio        string `gorm:"size:255" json:"bio"`
	Experience int64  `gorm:"not null;default:0" json:"experience"`
}
