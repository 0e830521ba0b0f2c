package models

import "time"

// 关系类型与目标类型取值
const (
	RelationBookmark = "bookmark"
	RelationLike     = "like"
	RelationDislike  = "dislike"

	TargetArticle = "article"
	TargetComment = "comment"
	TargetUser    = "user"
)

// Relation 用户与目标之间的开关型关系（收藏/点赞/点踩）。
// 行存在即为"开"，不存在即为"关"，没有布尔标志位；
// 开关切换只做插入和硬删除，从不原地更新。
// (user, target_kind, target_id, kind) 上的唯一索引用于并发切换的冲突检测。
// 不用软删除：残留的已删行会让唯一索引拒绝重新点亮。
type Relation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;uniqueIndex:idx_relation_key;not null" json:"user_id"`
	TargetKind string    `gorm:"size:20;uniqueIndex:idx_relation_key;not null" json:"target_kind"`
	TargetID   uint      `gorm:"uniqueIndex:idx_relation_key;not null" json:"target_id"`
	Kind       string    `gorm:"size:20;uniqueIndex:idx_relation_key;not null" json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExclusivityGroup 返回关系类型所属的互斥组；组内同一 (user, target) 至多一个激活。
// 空串表示不互斥（bookmark 与 like 可共存）。
func ExclusivityGroup(kind string) []string {
	switch kind {
	case RelationLike, RelationDislike:
		return []string{RelationLike, RelationDislike}
	default:
		return nil
	}
}
