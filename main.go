package main

import (
	"log"

	"contenthub/config"
	"contenthub/controllers"
	"contenthub/global"
	"contenthub/leveling"
	"contenthub/router"
	"contenthub/services"
)

func main() {
	config.InitConfig()
	cfg := config.AppConfig

	curve := leveling.Curve{
		Base:      cfg.Gamification.LevelBase,
		Increment: cfg.Gamification.LevelIncrement,
	}
	rewards := services.DefaultRewards(
		cfg.Gamification.Rewards.LikeReceived,
		cfg.Gamification.Rewards.BookmarkReceived,
	)

	engagementSvc := services.NewEngagementService(global.Db, global.RedisDB, curve, rewards)

	// 有 RabbitMQ 走队列异步记账，没有就进程内直调
	var publisher services.EventPublisher
	if global.RabbitChannel != nil {
		publisher = services.NewRabbitPublisher(global.RabbitChannel, cfg.RabbitMQ.Queue)
		if err := services.StartEngagementConsumer(global.RabbitChannel, cfg.RabbitMQ.Queue, engagementSvc); err != nil {
			log.Fatalf("Failed to start engagement consumer: %v", err)
		}
	} else {
		publisher = &services.InProcessPublisher{Handler: engagementSvc.HandleToggleEvent}
	}

	toggleSvc := services.NewToggleService(global.Db, publisher)
	articleSvc := services.NewArticleService(global.Db, global.RedisDB)
	controllers.InitControllers(toggleSvc, engagementSvc, articleSvc)

	r := router.SetupRouter()

	port := cfg.App.Port
	if port == "" {
		port = ":8080"
	}
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
