package controllers

import (
	"net/http"
	"strconv"

	"contenthub/global"
	"contenthub/middlewares"
	"contenthub/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications 当前用户通知列表，未读在前
func GetNotifications(ctx *gin.Context) {
	userID := middlewares.CurrentUserID(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var notifications []models.Notification
	if err := global.Db.Where("recipient_id = ?", userID).
		Order("is_read ASC, created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&notifications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": notifications})
}

// MarkNotificationRead 标记单条已读（只能标自己的）
func MarkNotificationRead(ctx *gin.Context) {
	userID := middlewares.CurrentUserID(ctx)
	id := ctx.Param("id")

	res := global.Db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "marked read"})
}
