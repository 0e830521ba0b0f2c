package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string
		Port string
	}
	Database struct {
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
	Auth struct {
		JwtSecret  string
		TokenHours int
	}
	Gamification struct {
		LevelBase      int64
		LevelIncrement int64
		// 理由码 -> 经验值；零值条目不发放
		Rewards struct {
			ArticlePublished    int64
			CommentPosted       int64
			LikeReceived        int64
			BookmarkReceived    int64
			DailyStreak         int64
			AchievementUnlocked int64
		}
	}
}

var AppConfig *Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	AppConfig = &Config{}

	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// 敏感项允许环境变量覆盖
	if secret := getEnvOrDefault("JWT_SECRET", ""); secret != "" {
		AppConfig.Auth.JwtSecret = secret
	}
	if dsn := getEnvOrDefault("DATABASE_DSN", ""); dsn != "" {
		AppConfig.Database.Dsn = dsn
	}
	if addr := getEnvOrDefault("REDIS_ADDR", ""); addr != "" {
		AppConfig.Redis.Addr = addr
	}
	if AppConfig.Auth.TokenHours <= 0 {
		AppConfig.Auth.TokenHours = 72
	}
	if AppConfig.Gamification.LevelBase <= 0 {
		AppConfig.Gamification.LevelBase = 100
	}
	if AppConfig.Gamification.LevelIncrement <= 0 {
		AppConfig.Gamification.LevelIncrement = 75
	}

	initDB()
	initRedis()
	initRabbit()
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
