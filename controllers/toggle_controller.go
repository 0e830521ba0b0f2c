package controllers

import (
	"log"
	"net/http"
	"strconv"

	"contenthub/middlewares"
	"contenthub/models"

	"github.com/gin-gonic/gin"
)

// ToggleRelation 切换关系开关：POST /api/targets/:kind/:id/toggle/:relation
func ToggleRelation(ctx *gin.Context) {
	targetKind := ctx.Param("kind")
	relationKind := ctx.Param("relation")
	targetID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return
	}
	userID := middlewares.CurrentUserID(ctx)

	result, err := toggleSvc.Toggle(userID, targetKind, uint(targetID), relationKind)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// 文章点赞计数跟着开关走，被 dislike 挤掉的 like 也要回退；计数失败不影响开关结果
	if targetKind == models.TargetArticle {
		var delta int64
		if relationKind == models.RelationLike {
			if result.IsActive {
				delta = 1
			} else {
				delta = -1
			}
		}
		for _, displaced := range result.Displaced {
			if displaced == models.RelationLike {
				delta--
			}
		}
		if delta != 0 {
			if _, err := articleSvc.BumpLikes(uint(targetID), delta); err != nil {
				log.Printf("like counter bump failed: article=%d err=%v", targetID, err)
			}
		}
	}

	if result.WasJustActivated && relationKind == models.RelationLike {
		if ownerID, err := targetOwnerForNotify(targetKind, uint(targetID)); err == nil {
			notify(models.NotifyLike, userID, ownerID, targetKind, uint(targetID), "liked your "+targetKind)
		}
	}

	ctx.JSON(http.StatusOK, result)
}

// GetRelationState 查询开关状态：GET /api/targets/:kind/:id/state/:relation
func GetRelationState(ctx *gin.Context) {
	targetKind := ctx.Param("kind")
	relationKind := ctx.Param("relation")
	targetID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return
	}
	userID := middlewares.CurrentUserID(ctx)

	active, err := toggleSvc.IsActive(userID, targetKind, uint(targetID), relationKind)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"is_active": active})
}

// GetMyBookmarks 当前用户收藏列表（目标 id，创建时间倒序分页）
func GetMyBookmarks(ctx *gin.Context) {
	userID := middlewares.CurrentUserID(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	ids, err := toggleSvc.ListActiveTargets(userID, models.RelationBookmark, page, pageSize)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": ids})
}
