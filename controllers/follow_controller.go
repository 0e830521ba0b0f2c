package controllers

import (
	"net/http"
	"strconv"

	"contenthub/errs"
	"contenthub/global"
	"contenthub/middlewares"
	"contenthub/models"

	"github.com/gin-gonic/gin"
)

// FollowUser 关注用户；重复关注由唯一索引拦下，按已关注处理
func FollowUser(ctx *gin.Context) {
	followerID := middlewares.CurrentUserID(ctx)
	followedID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if uint(followedID) == followerID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		return
	}

	var target models.User
	if err := global.Db.First(&target, followedID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	follow := models.UserFollow{FollowerID: followerID, FollowedID: uint(followedID)}
	if err := global.Db.Create(&follow).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			ctx.JSON(http.StatusOK, gin.H{"message": "already following"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	notify(models.NotifyFollow, followerID, uint(followedID), models.TargetUser, uint(followedID), "started following you")

	ctx.JSON(http.StatusCreated, gin.H{"message": "following"})
}

// UnfollowUser 取消关注
func UnfollowUser(ctx *gin.Context) {
	followerID := middlewares.CurrentUserID(ctx)
	followedID := ctx.Param("id")

	res := global.Db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.UserFollow{})
	if res.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not following"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

// GetFollowers 粉丝列表
func GetFollowers(ctx *gin.Context) {
	userID := ctx.Param("id")

	var ids []uint
	if err := global.Db.Model(&models.UserFollow{}).
		Where("followed_id = ?", userID).
		Order("created_at DESC").
		Pluck("follower_id", &ids).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": ids})
}

// GetFollowing 关注列表
func GetFollowing(ctx *gin.Context) {
	userID := ctx.Param("id")

	var ids []uint
	if err := global.Db.Model(&models.UserFollow{}).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Pluck("followed_id", &ids).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": ids})
}
