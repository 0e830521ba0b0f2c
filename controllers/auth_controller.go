package controllers

import (
	"log"
	"net/http"

	"contenthub/config"
	"contenthub/global"
	"contenthub/models"
	"contenthub/utils"

	"github.com/gin-gonic/gin"
)

type authRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册新用户
func Register(ctx *gin.Context) {
	var req authRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{Username: req.Username, Password: hashed}
	if err := global.Db.Create(&user).Error; err != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"token": token, "user_id": user.ID})
}

// Login 登录；当天首次登录发放签到经验（失败只打日志，不影响登录）
func Login(ctx *gin.Context) {
	var req authRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := global.Db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "wrong credentials"})
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "wrong credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	streak := false
	if engagementSvc != nil {
		granted, err := engagementSvc.GrantDailyStreak(user.ID, config.AppConfig.Gamification.Rewards.DailyStreak)
		if err != nil {
			log.Printf("daily streak grant failed: user=%d err=%v", user.ID, err)
		}
		streak = granted
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID, "daily_streak_granted": streak})
}
