package services

import (
	"errors"
	"fmt"
	"time"

	"contenthub/errs"
	"contenthub/leveling"
	"contenthub/models"

	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

const reputationRankKey = "rank:user:reputation"

// RewardKey 经验配置表的键：(关系类型, 目标类型)
type RewardKey struct {
	Kind       string
	TargetKind string
}

// Reward 发放额度与入账理由码
type Reward struct {
	Amount int64
	Reason string
}

// UserStats 面向接口层的用户统计
type UserStats struct {
	TotalExperience int64         `json:"total_experience"`
	Level           leveling.Info `json:"level"`
	Reputation      int64         `json:"reputation"`
}

// EngagementService 经验账本的唯一持有者：追加流水、原子递增计数器、
// 按需推导等级，并消费开关事件换算成经验与声望。
type EngagementService struct {
	db      *gorm.DB
	redis   *redis.Client
	curve   leveling.Curve
	rewards map[RewardKey]Reward
}

func NewEngagementService(db *gorm.DB, redisDB *redis.Client, curve leveling.Curve, rewards map[RewardKey]Reward) *EngagementService {
	return &EngagementService{db: db, redis: redisDB, curve: curve, rewards: rewards}
}

// DefaultRewards 按配置组装事件换算表
func DefaultRewards(likeReceived, bookmarkReceived int64) map[RewardKey]Reward {
	return map[RewardKey]Reward{
		{Kind: models.RelationLike, TargetKind: models.TargetArticle}:     {Amount: likeReceived, Reason: models.ReasonLikeReceived},
		{Kind: models.RelationLike, TargetKind: models.TargetComment}:     {Amount: likeReceived, Reason: models.ReasonLikeReceived},
		{Kind: models.RelationBookmark, TargetKind: models.TargetArticle}: {Amount: bookmarkReceived, Reason: models.ReasonBookmarkReceived},
	}
}

// GrantExperience 追加一条经验流水并递增用户计数器，返回新的累计总额。
// 额度必须为正：经验是单向棘轮，不支持回收。
// 计数器用 SQL 原子自增，两个并发 +10/+5 的结果一定是 +15。
func (s *EngagementService) GrantExperience(userID uint, amount int64, reason string) (int64, error) {
	return s.grant(models.ExperienceEntry{UserID: userID, Amount: amount, Reason: reason})
}

func (s *EngagementService) grant(entry models.ExperienceEntry) (int64, error) {
	if entry.Amount <= 0 {
		return 0, errs.InvalidArgument(fmt.Sprintf("experience amount must be > 0, got %d", entry.Amount))
	}
	if entry.Reason == "" {
		return 0, errs.InvalidArgument("experience reason is required")
	}

	var total int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", entry.UserID).
			UpdateColumn("experience", gorm.Expr("experience + ?", entry.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound(fmt.Sprintf("user %d not found", entry.UserID))
		}

		entry.CreatedAt = time.Now()
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("experience").First(&user, entry.UserID).Error; err != nil {
			return err
		}
		total = user.Experience
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return 0, err
		}
		return 0, errs.FromStorage(err)
	}
	return total, nil
}

// CurrentStats 读取计数器并推导等级；声望来自 Redis ZSET，键不存在视为 0
func (s *EngagementService) CurrentStats(userID uint) (UserStats, error) {
	var user models.User
	if err := s.db.Select("id", "experience").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserStats{}, errs.NotFound(fmt.Sprintf("user %d not found", userID))
		}
		return UserStats{}, errs.FromStorage(err)
	}

	info, err := s.curve.Compute(user.Experience)
	if err != nil {
		return UserStats{}, err
	}

	stats := UserStats{TotalExperience: user.Experience, Level: info}
	if s.redis != nil {
		member := fmt.Sprintf("%d", userID)
		score, err := s.redis.ZScore(reputationRankKey, member).Result()
		if err != nil && err != redis.Nil {
			return UserStats{}, errs.Transient("reputation read failed: " + err.Error())
		}
		stats.Reputation = int64(score)
	}
	return stats, nil
}

// HandleToggleEvent 把开关事件换算成经验与声望。
// 只有激活才发经验（取消不回收，棘轮约定）；声望不是棘轮，
// 点赞 +1 点踩 -1，取消时反向调整。
func (s *EngagementService) HandleToggleEvent(evt ToggleEvent) error {
	s.adjustReputation(evt)

	if !evt.Activated {
		return nil
	}
	reward, ok := s.rewards[RewardKey{Kind: evt.Kind, TargetKind: evt.TargetKind}]
	if !ok || reward.Amount <= 0 {
		return nil
	}

	_, err := s.grant(models.ExperienceEntry{
		UserID:     evt.OwnerID,
		Amount:     reward.Amount,
		Reason:     reward.Reason,
		ActorID:    evt.ActorID,
		TargetKind: evt.TargetKind,
		TargetID:   evt.TargetID,
	})
	return err
}

func (s *EngagementService) adjustReputation(evt ToggleEvent) {
	if s.redis == nil {
		return
	}
	var delta float64
	switch evt.Kind {
	case models.RelationLike:
		delta = 1
	case models.RelationDislike:
		delta = -1
	default:
		return
	}
	if !evt.Activated {
		delta = -delta
	}
	member := fmt.Sprintf("%d", evt.OwnerID)
	// 声望更新失败不影响经验入账
	_ = s.redis.ZIncrBy(reputationRankKey, delta, member).Err()
}

// UnlockAchievement 解锁成就并发放成就经验，首次解锁返回 true。
// 重复解锁由 (user, code) 唯一索引拦下，按已解锁处理，不再发经验。
func (s *EngagementService) UnlockAchievement(userID uint, code string, amount int64) (bool, error) {
	if code == "" {
		return false, errs.InvalidArgument("achievement code is required")
	}

	achievement := models.UserAchievement{UserID: userID, Code: code}
	if err := s.db.Create(&achievement).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return false, nil
		}
		return false, errs.FromStorage(err)
	}

	if amount > 0 {
		if _, err := s.GrantExperience(userID, amount, models.ReasonAchievement); err != nil {
			return true, err
		}
	}
	return true, nil
}

// GrantDailyStreak 每 UTC 日最多发一次的签到经验，用 Redis SETNX 做当日闸门。
// 闸门先行于入账，入账失败当天不再补发，取 at-most-once，
// 避免重试把签到变成刷分入口。
func (s *EngagementService) GrantDailyStreak(userID uint, amount int64) (bool, error) {
	if s.redis == nil || amount <= 0 {
		return false, nil
	}
	key := fmt.Sprintf("user:%d:streak:%s", userID, time.Now().UTC().Format("2006-01-02"))
	set, err := s.redis.SetNX(key, 1, 48*time.Hour).Result()
	if err != nil {
		return false, errs.Transient("streak gate failed: " + err.Error())
	}
	if !set {
		return false, nil
	}
	if _, err := s.GrantExperience(userID, amount, models.ReasonDailyStreak); err != nil {
		return false, err
	}
	return true, nil
}

// ReputationTop 声望排行榜前 n 名
func (s *EngagementService) ReputationTop(n int) ([]redis.Z, error) {
	if s.redis == nil {
		return nil, nil
	}
	res, err := s.redis.ZRevRangeWithScores(reputationRankKey, 0, int64(n-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, errs.Transient("reputation rank read failed: " + err.Error())
	}
	return res, nil
}
