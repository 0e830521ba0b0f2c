package middlewares

import (
	"net/http"
	"strings"

	"contenthub/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验 Bearer 令牌，把 userID/username 放进请求上下文
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			ctx.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, username, err := utils.ParseJWT(tokenString)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			ctx.Abort()
			return
		}

		ctx.Set("userID", userID)
		ctx.Set("username", username)
		ctx.Next()
	}
}

// CurrentUserID 从上下文取登录用户 id
func CurrentUserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
