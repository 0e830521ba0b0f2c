package services

import (
	"errors"
	"testing"
	"time"

	"contenthub/errs"
	"contenthub/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTogglePairLaw(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	svc := NewToggleService(db, nil)

	first, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationBookmark)
	require.NoError(t, err)
	require.Equal(t, ToggleResult{IsActive: true, WasJustActivated: true}, first)

	second, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationBookmark)
	require.NoError(t, err)
	require.Equal(t, ToggleResult{IsActive: false, WasJustActivated: false}, second)

	// 两次切换后回到初始状态
	active, err := svc.IsActive(actor.ID, models.TargetArticle, article.ID, models.RelationBookmark)
	require.NoError(t, err)
	require.False(t, active)

	var count int64
	require.NoError(t, db.Model(&models.Relation{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestToggleExclusivity(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	svc := NewToggleService(db, nil)

	_, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)

	res, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationDislike)
	require.NoError(t, err)
	require.True(t, res.WasJustActivated)
	require.Equal(t, []string{models.RelationLike}, res.Displaced)

	liked, err := svc.IsActive(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	require.False(t, liked)

	disliked, err := svc.IsActive(actor.ID, models.TargetArticle, article.ID, models.RelationDislike)
	require.NoError(t, err)
	require.True(t, disliked)
}

func TestToggleBookmarkNotExclusiveWithLike(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	svc := NewToggleService(db, nil)

	_, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	_, err = svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationBookmark)
	require.NoError(t, err)

	liked, err := svc.IsActive(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	require.True(t, liked)
}

func TestToggleMissingTarget(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, "actor")

	svc := NewToggleService(db, nil)

	_, err := svc.Toggle(actor.ID, models.TargetArticle, 9999, models.RelationLike)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Relation{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestToggleUnknownKinds(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, "actor")

	_, err := NewToggleService(db, nil).Toggle(actor.ID, models.TargetArticle, 1, "applaud")
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))

	_, err = NewToggleService(db, nil).Toggle(actor.ID, "podcast", 1, models.RelationLike)
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestToggleOnComment(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)
	comment := seedComment(t, db, author.ID, article.ID)

	svc := NewToggleService(db, nil)

	res, err := svc.Toggle(actor.ID, models.TargetComment, comment.ID, models.RelationLike)
	require.NoError(t, err)
	require.True(t, res.IsActive)
}

func TestToggleEmitsEvents(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	pub := &capturePublisher{}
	svc := NewToggleService(db, pub)

	_, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	_, err = svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)

	require.Len(t, pub.events, 2)
	require.True(t, pub.events[0].Activated)
	require.Equal(t, author.ID, pub.events[0].OwnerID)
	require.Equal(t, actor.ID, pub.events[0].ActorID)
	require.False(t, pub.events[1].Activated)
}

// dislike 顶掉 like 时，被挤掉的 like 必须补发下线事件，
// 否则声望等下游聚合永远回退不了
func TestToggleExclusivitySwapEmitsDeactivation(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	pub := &capturePublisher{}
	svc := NewToggleService(db, pub)

	_, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	_, err = svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationDislike)
	require.NoError(t, err)

	require.Len(t, pub.events, 3)
	require.Equal(t, models.RelationLike, pub.events[0].Kind)
	require.True(t, pub.events[0].Activated)
	// 下线事件先于新的上线事件，聚合端看到的总是一致的先退后进
	require.Equal(t, models.RelationLike, pub.events[1].Kind)
	require.False(t, pub.events[1].Activated)
	require.Equal(t, models.RelationDislike, pub.events[2].Kind)
	require.True(t, pub.events[2].Activated)

	for _, evt := range pub.events {
		require.Equal(t, author.ID, evt.OwnerID)
		require.Equal(t, actor.ID, evt.ActorID)
	}
}

// 互斥换向驱动的声望账：like(+1) 被 dislike 顶掉后应落在 -1，而不是 0
func TestExclusivitySwapReputationEvents(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	pub := &capturePublisher{}
	svc := NewToggleService(db, pub)

	_, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	_, err = svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationDislike)
	require.NoError(t, err)

	// 按 HandleToggleEvent 的声望规则回放事件流
	var reputation int64
	for _, evt := range pub.events {
		var delta int64
		switch evt.Kind {
		case models.RelationLike:
			delta = 1
		case models.RelationDislike:
			delta = -1
		}
		if !evt.Activated {
			delta = -delta
		}
		reputation += delta
	}
	require.Equal(t, int64(-1), reputation)
}

// 并发激活竞争：唯一索引拦下后到者，错误归类为 ErrConflict，重读重试即可
func TestToggleDuplicateInsertMapsToConflict(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	// 在 gorm:create 之前从旁路塞入同键行，模拟先到的并发激活方
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("race_relation_insert", func(d *gorm.DB) {
		if injected {
			return
		}
		if _, ok := d.Statement.Dest.(*models.Relation); !ok {
			return
		}
		injected = true
		d.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO relations (user_id, target_kind, target_id, kind, created_at) VALUES (?, ?, ?, ?, ?)",
			actor.ID, models.TargetArticle, article.ID, models.RelationLike, time.Now())
	})
	require.NoError(t, err)

	svc := NewToggleService(db, nil)

	_, err = svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrConflict))

	// 失败的事务不留半截状态
	var count int64
	require.NoError(t, db.Model(&models.Relation{}).Count(&count).Error)
	require.Zero(t, count)

	// 冲突后重读重试一次即成功
	res, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	require.True(t, res.IsActive)
}

func TestTogglePublishFailureIsolated(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	actor := seedUser(t, db, "actor")
	article := seedArticle(t, db, author.ID)

	pub := &capturePublisher{fail: errors.New("broker down")}
	svc := NewToggleService(db, pub)

	// 事件发布失败不影响开关结果
	res, err := svc.Toggle(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	require.True(t, res.IsActive)

	active, err := svc.IsActive(actor.ID, models.TargetArticle, article.ID, models.RelationLike)
	require.NoError(t, err)
	require.True(t, active)
}

func TestListActiveTargetsOrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, "actor")

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		rel := models.Relation{
			UserID:     actor.ID,
			TargetKind: models.TargetArticle,
			TargetID:   uint(i),
			Kind:       models.RelationBookmark,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&rel).Error)
	}

	svc := NewToggleService(db, nil)

	page1, err := svc.ListActiveTargets(actor.ID, models.RelationBookmark, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []uint{5, 4}, page1)

	page2, err := svc.ListActiveTargets(actor.ID, models.RelationBookmark, 2, 2)
	require.NoError(t, err)
	require.Equal(t, []uint{3, 2}, page2)

	page3, err := svc.ListActiveTargets(actor.ID, models.RelationBookmark, 3, 2)
	require.NoError(t, err)
	require.Equal(t, []uint{1}, page3)
}
