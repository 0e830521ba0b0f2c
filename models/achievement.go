package models

import "time"

// 成就代号
const (
	AchievementFirstArticle = "first_article"
)

// UserAchievement 已解锁成就，(user, code) 至多一行。
// 行本身只做幂等闸门，成就经验走账本发放。
type UserAchievement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	Code      string    `gorm:"size:50;uniqueIndex:idx_user_achievement;not null" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
