package controllers

import (
	"errors"
	"log"
	"net/http"

	"contenthub/errs"
	"contenthub/global"
	"contenthub/models"
	"contenthub/services"

	"github.com/gin-gonic/gin"
)

// controller 层持有的服务实例，由 router 装配时注入
var (
	toggleSvc     *services.ToggleService
	engagementSvc *services.EngagementService
	articleSvc    *services.ArticleService
)

// InitControllers 注入服务依赖
func InitControllers(toggle *services.ToggleService, engagement *services.EngagementService, article *services.ArticleService) {
	toggleSvc = toggle
	engagementSvc = engagement
	articleSvc = article
}

// respondError 错误分类 -> HTTP 状态码
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrTransient):
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// targetOwnerForNotify 查目标所有者，只用于通知投递
func targetOwnerForNotify(targetKind string, targetID uint) (uint, error) {
	switch targetKind {
	case models.TargetArticle:
		var article models.Article
		if err := global.Db.Select("id", "author_id").First(&article, targetID).Error; err != nil {
			return 0, err
		}
		return article.AuthorID, nil
	case models.TargetComment:
		var comment models.Comment
		if err := global.Db.Select("id", "user_id").First(&comment, targetID).Error; err != nil {
			return 0, err
		}
		return comment.UserID, nil
	}
	return 0, errs.NotFound("unknown target kind: " + targetKind)
}

// notify 写一条站内通知；失败只打日志，不影响主流程
func notify(notifType string, actorID, recipientID uint, targetKind string, targetID uint, message string) {
	if recipientID == 0 || recipientID == actorID {
		return
	}
	n := models.Notification{
		Type:        notifType,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetKind:  targetKind,
		TargetID:    targetID,
		Message:     message,
	}
	if err := global.Db.Create(&n).Error; err != nil {
		log.Printf("notification create failed: type=%s recipient=%d err=%v", notifType, recipientID, err)
	}
}
