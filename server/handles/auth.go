package handles

import (
	"github.com/gin-gonic/gin"

	"github.com/taskproof/taskproof/internal/conf"
	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/model"
	"github.com/taskproof/taskproof/server/common"
)

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	user, err := db.GetUserByName(req.Username)
	if err != nil {
		common.ErrorStrResp(c, "username or password incorrect", 401)
		return
	}
	if err = user.ValidatePassword(req.Password); err != nil {
		common.ErrorStrResp(c, "username or password incorrect", 401)
		return
	}
	token, err := common.GenerateToken(user.Username, user.ID)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, gin.H{"token": token, "user": user})
}

func CurrentUser(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	common.SuccessResp(c, user)
}

func getUser(c *gin.Context) (*model.User, bool) {
	user, ok := c.Request.Context().Value(conf.UserKey).(*model.User)
	return user, ok
}
