package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetUserStats 用户经验/等级/声望
func GetUserStats(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	stats, err := engagementSvc.CurrentStats(uint(userID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetTopArticles 文章点赞排行榜
func GetTopArticles(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if err != nil || top <= 0 {
		top = 10
	}

	list, err := articleSvc.TopArticles(top)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": list})
}

// GetReputationLeaderboard 用户声望排行榜
func GetReputationLeaderboard(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if err != nil || top <= 0 {
		top = 10
	}

	zres, err := engagementSvc.ReputationTop(top)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]gin.H, 0, len(zres))
	for idx, z := range zres {
		member, _ := z.Member.(string)
		list = append(list, gin.H{"user_id": member, "score": int64(z.Score), "rank": idx + 1})
	}

	ctx.JSON(http.StatusOK, gin.H{"list": list})
}
