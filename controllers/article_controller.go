package controllers

import (
	"log"
	"net/http"
	"strconv"

	"contenthub/config"
	"contenthub/global"
	"contenthub/middlewares"
	"contenthub/models"

	"github.com/gin-gonic/gin"
)

// CreateArticle 发表文章并发放发文经验（入账失败不影响发文）
func CreateArticle(ctx *gin.Context) {
	var article models.Article
	if err := ctx.ShouldBindJSON(&article); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	article.AuthorID = middlewares.CurrentUserID(ctx)

	if err := global.Db.Create(&article).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if engagementSvc != nil {
		// 配置为 0 表示该理由不发经验
		if amount := config.AppConfig.Gamification.Rewards.ArticlePublished; amount > 0 {
			if _, err := engagementSvc.GrantExperience(article.AuthorID, amount, models.ReasonArticlePublished); err != nil {
				log.Printf("publish experience grant failed: user=%d article=%d err=%v", article.AuthorID, article.ID, err)
			}
		}

		var authored int64
		if err := global.Db.Model(&models.Article{}).
			Where("author_id = ?", article.AuthorID).Count(&authored).Error; err == nil && authored == 1 {
			bonus := config.AppConfig.Gamification.Rewards.AchievementUnlocked
			if _, err := engagementSvc.UnlockAchievement(article.AuthorID, models.AchievementFirstArticle, bonus); err != nil {
				log.Printf("achievement grant failed: user=%d code=%s err=%v",
					article.AuthorID, models.AchievementFirstArticle, err)
			}
		}
	}

	ctx.JSON(http.StatusCreated, article)
}

// GetArticles 文章列表，按创建时间倒序分页
func GetArticles(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var articles []models.Article
	if err := global.Db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&articles).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": articles})
}

// GetArticleByID 文章详情，附带 Redis 里的点赞数
func GetArticleByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var article models.Article
	if err := global.Db.First(&article, id).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	likes, err := articleSvc.GetLikes(id)
	if err != nil {
		// 计数读取失败降级为 0，不挡详情
		log.Printf("like count read failed: article=%s err=%v", id, err)
		likes = 0
	}

	ctx.JSON(http.StatusOK, gin.H{"article": article, "likes": likes})
}

// DeleteArticle 仅作者可删
func DeleteArticle(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := middlewares.CurrentUserID(ctx)

	var article models.Article
	if err := global.Db.First(&article, id).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	if article.AuthorID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}

	if err := global.Db.Delete(&article).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}
