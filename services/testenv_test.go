package services

import (
	"testing"

	"contenthub/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite，单连接串行化，迁移全部模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Relation{},
		&models.ExperienceEntry{},
		&models.Notification{},
		&models.UserFollow{},
		&models.UserAchievement{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedArticle(t *testing.T, db *gorm.DB, authorID uint) *models.Article {
	t.Helper()
	article := &models.Article{Title: "t", Content: "c", AuthorID: authorID}
	require.NoError(t, db.Create(article).Error)
	return article
}

func seedComment(t *testing.T, db *gorm.DB, userID, articleID uint) *models.Comment {
	t.Helper()
	comment := &models.Comment{Content: "c", UserID: userID, ArticleID: articleID}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

// capturePublisher 收集事件，可注入失败
type capturePublisher struct {
	events []ToggleEvent
	fail   error
}

func (p *capturePublisher) PublishToggle(evt ToggleEvent) error {
	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, evt)
	return nil
}
