package models

import "time"

// 通知类型
const (
	NotifyLike    = "like"
	NotifyComment = "comment"
	NotifyFollow  = "follow"
)

// Notification 站内通知（收到点赞/评论/关注时产生）
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:30;index" json:"type"`
	ActorID     uint      `gorm:"index" json:"actor_id"`
	RecipientID uint      `gorm:"index" json:"recipient_id"`
	TargetKind  string    `gorm:"size:20" json:"target_kind"`
	TargetID    uint      `json:"target_id"`
	Message     string    `gorm:"size:255" json:"message"`
	IsRead      bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
