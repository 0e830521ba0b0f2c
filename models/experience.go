package models

import "time"

// 经验发放理由码
const (
	ReasonArticlePublished = "article_published"
	ReasonCommentPosted    = "comment_posted"
	ReasonLikeReceived     = "like_received"
	ReasonBookmarkReceived = "bookmark_received"
	ReasonDailyStreak      = "daily_streak"
	ReasonAchievement      = "achievement_unlocked"
)

// ExperienceEntry 经验账本流水，只追加、只为正数，从不回收。
// User.Experience 计数器与流水同事务递增，计数器是读取路径的权威总额，
// 流水留作审计与人工重放。
type ExperienceEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	Reason     string    `gorm:"size:50;index;not null" json:"reason"`
	ActorID    uint      `json:"actor_id"`
	TargetKind string    `gorm:"size:20" json:"target_kind"`
	TargetID   uint      `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}
