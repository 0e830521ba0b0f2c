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

// CreateComment 评论文章；发评论经验与通知都是尽力而为
func CreateComment(ctx *gin.Context) {
	articleID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	var article models.Article
	if err := global.Db.First(&article, articleID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	var comment models.Comment
	if err := ctx.ShouldBindJSON(&comment); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment.UserID = middlewares.CurrentUserID(ctx)
	comment.ArticleID = uint(articleID)

	if err := global.Db.Create(&comment).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if engagementSvc != nil {
		// 配置为 0 表示该理由不发经验
		if amount := config.AppConfig.Gamification.Rewards.CommentPosted; amount > 0 {
			if _, err := engagementSvc.GrantExperience(comment.UserID, amount, models.ReasonCommentPosted); err != nil {
				log.Printf("comment experience grant failed: user=%d comment=%d err=%v", comment.UserID, comment.ID, err)
			}
		}
	}
	notify(models.NotifyComment, comment.UserID, article.AuthorID, models.TargetArticle, article.ID, "commented on your article")

	ctx.JSON(http.StatusCreated, comment)
}

// GetComments 某篇文章的评论列表
func GetComments(ctx *gin.Context) {
	articleID := ctx.Param("id")

	var comments []models.Comment
	if err := global.Db.Where("article_id = ?", articleID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": comments})
}
