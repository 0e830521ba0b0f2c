package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"contenthub/errs"
	"contenthub/models"

	"gorm.io/gorm"
)

// ToggleResult 一次开关调用后的状态。
// Displaced 是本次激活从互斥组里挤掉的兄弟关系（dislike 顶掉 like 时为 ["like"]），
// 调用方据此回退点赞计数等派生量。
type ToggleResult struct {
	IsActive         bool     `json:"is_active"`
	WasJustActivated bool     `json:"was_just_activated"`
	Displaced        []string `json:"displaced,omitempty"`
}

// ToggleService 统一的开关型关系引擎：收藏、点赞、点踩共用一套逻辑，
// 差异只在关系类型参数和互斥组配置。存储句柄显式注入，不读全局。
type ToggleService struct {
	db        *gorm.DB
	publisher EventPublisher
}

func NewToggleService(db *gorm.DB, publisher EventPublisher) *ToggleService {
	return &ToggleService{db: db, publisher: publisher}
}

func validKind(kind string) bool {
	switch kind {
	case models.RelationBookmark, models.RelationLike, models.RelationDislike:
		return true
	}
	return false
}

// targetOwner 校验目标存在并返回其所有者（经验/通知的接收方）
func (s *ToggleService) targetOwner(targetKind string, targetID uint) (uint, error) {
	switch targetKind {
	case models.TargetArticle:
		var article models.Article
		if err := s.db.Select("id", "author_id").First(&article, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errs.NotFound(fmt.Sprintf("article %d not found", targetID))
			}
			return 0, errs.FromStorage(err)
		}
		return article.AuthorID, nil
	case models.TargetComment:
		var comment models.Comment
		if err := s.db.Select("id", "user_id").First(&comment, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errs.NotFound(fmt.Sprintf("comment %d not found", targetID))
			}
			return 0, errs.FromStorage(err)
		}
		return comment.UserID, nil
	default:
		return 0, errs.InvalidArgument("unknown target kind: " + targetKind)
	}
}

// Toggle 切换 (user, target, kind) 关系：有则删、无则建。
// 激活时同一事务内先清掉互斥组里的兄弟关系（like/dislike 不能共存），
// 避免出现两者同亮或同灭的中间态。
// 并发的重复激活由唯一索引拦下，映射为 ErrConflict，调用方重读后重试一次即可。
func (s *ToggleService) Toggle(userID uint, targetKind string, targetID uint, kind string) (ToggleResult, error) {
	if !validKind(kind) {
		return ToggleResult{}, errs.InvalidArgument("unknown relation kind: " + kind)
	}
	ownerID, err := s.targetOwner(targetKind, targetID)
	if err != nil {
		return ToggleResult{}, err
	}

	var result ToggleResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_kind = ? AND target_id = ? AND kind = ?",
			userID, targetKind, targetID, kind).Delete(&models.Relation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// 已激活 -> 关闭
			result = ToggleResult{IsActive: false, WasJustActivated: false}
			return nil
		}

		// 互斥组先记下将被挤掉的兄弟再删，事务外要给每个兄弟补发下线事件
		var displaced []string
		if group := models.ExclusivityGroup(kind); group != nil {
			if err := tx.Model(&models.Relation{}).
				Where("user_id = ? AND target_kind = ? AND target_id = ? AND kind IN ?",
					userID, targetKind, targetID, group).
				Pluck("kind", &displaced).Error; err != nil {
				return err
			}
			if len(displaced) > 0 {
				if err := tx.Where("user_id = ? AND target_kind = ? AND target_id = ? AND kind IN ?",
					userID, targetKind, targetID, group).Delete(&models.Relation{}).Error; err != nil {
					return err
				}
			}
		}

		relation := models.Relation{
			UserID:     userID,
			TargetKind: targetKind,
			TargetID:   targetID,
			Kind:       kind,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&relation).Error; err != nil {
			return err
		}
		result = ToggleResult{IsActive: true, WasJustActivated: true, Displaced: displaced}
		return nil
	})
	if err != nil {
		return ToggleResult{}, errs.FromStorage(err)
	}

	// 事件失败不回滚开关本身：经验记账是尽力而为，日志足够人工补账。
	// 被挤掉的兄弟先发下线事件，聚合端才能把声望回退到位。
	if s.publisher != nil {
		now := time.Now()
		for _, displacedKind := range result.Displaced {
			s.publish(ToggleEvent{
				ActorID:    userID,
				OwnerID:    ownerID,
				TargetKind: targetKind,
				TargetID:   targetID,
				Kind:       displacedKind,
				Activated:  false,
				OccurredAt: now,
			})
		}
		s.publish(ToggleEvent{
			ActorID:    userID,
			OwnerID:    ownerID,
			TargetKind: targetKind,
			TargetID:   targetID,
			Kind:       kind,
			Activated:  result.WasJustActivated,
			OccurredAt: now,
		})
	}

	return result, nil
}

func (s *ToggleService) publish(evt ToggleEvent) {
	if err := s.publisher.PublishToggle(evt); err != nil {
		log.Printf("toggle event publish failed: user=%d kind=%s target=%s/%d err=%v",
			evt.ActorID, evt.Kind, evt.TargetKind, evt.TargetID, err)
	}
}

// IsActive 纯读：行存在即为开
func (s *ToggleService) IsActive(userID uint, targetKind string, targetID uint, kind string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Relation{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ? AND kind = ?",
			userID, targetKind, targetID, kind).
		Count(&count).Error
	if err != nil {
		return false, errs.FromStorage(err)
	}
	return count > 0, nil
}

// ListActiveTargets 按创建时间倒序分页返回目标 id，page 从 1 开始
func (s *ToggleService) ListActiveTargets(userID uint, kind string, page, pageSize int) ([]uint, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	var ids []uint
	err := s.db.Model(&models.Relation{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, errs.FromStorage(err)
	}
	return ids, nil
}
