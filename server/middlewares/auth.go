package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskproof/taskproof/internal/conf"
	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/server/common"
)

// Auth resolves the bearer token to a user and stores it in the request
// context under conf.UserKey. Everything below the handlers receives the
// user as an explicit parameter.
func Auth(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		common.ErrorStrResp(c, "token is empty", 401)
		return
	}
	token = strings.TrimPrefix(token, "Bearer ")
	userClaims, err := common.ParseToken(token)
	if err != nil {
		common.ErrorResp(c, err, 401)
		return
	}
	user, err := db.GetUserByID(userClaims.UserID)
	if err != nil {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	ctx := context.WithValue(c.Request.Context(), conf.UserKey, user)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
