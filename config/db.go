package config

import (
	"log"

	"contenthub/global"
	"contenthub/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func initDB() {
	db, err := gorm.Open(mysql.Open(AppConfig.Database.Dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(AppConfig.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.Database.MaxOpenConns)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Relation{},
		&models.ExperienceEntry{},
		&models.Notification{},
		&models.UserFollow{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	global.Db = db
}
