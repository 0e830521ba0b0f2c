package models

import "time"

// UserFollow 关注关系，(follower, followed) 至多一行，
// 与 Relation 同样依靠唯一索引保证并发下不重复
type UserFollow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"index;uniqueIndex:idx_follow_pair;not null" json:"follower_id"`
	FollowedID uint      `gorm:"index;uniqueIndex:idx_follow_pair;not null" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
