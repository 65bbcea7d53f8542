package handles

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskproof/taskproof/internal/claims"
	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/model"
	"github.com/taskproof/taskproof/server/common"
)

// listPageSize is the fixed task listing page size.
const listPageSize = 5

type TaskInfo struct {
	model.Task
	Permissions claims.Visibility `json:"permissions"`
}

// ListTasks pages through active tasks annotated with the viewer's
// permission flags. Managers only see their own tasks.
func ListTasks(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	managerID := uint(0)
	if user.IsManager() {
		managerID = user.ID
	}
	tasks, total, err := db.ListActiveTasks(managerID, page, listPageSize)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	now := time.Now()
	infos := make([]TaskInfo, 0, len(tasks))
	for i := range tasks {
		vis, err := claims.Project(&tasks[i], user, now)
		if err != nil {
			common.ErrorResp(c, err, 500, true)
			return
		}
		infos = append(infos, TaskInfo{Task: tasks[i], Permissions: vis})
	}
	common.SuccessResp(c, common.PageResp{
		Content: infos,
		Total:   total,
	})
}

type CreateTaskReq struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	RequiredUploads uint   `json:"required_uploads" binding:"required,min=1"`
}

func CreateTask(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	if !user.IsManager() {
		common.ErrorStrResp(c, "only managers can create tasks", 403)
		return
	}
	var req CreateTaskReq
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	task := &model.Task{
		ManagerID:       user.ID,
		Name:            req.Name,
		Description:     req.Description,
		RequiredUploads: req.RequiredUploads,
		IsActive:        true,
	}
	if err := db.CreateTask(task); err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, task)
}

type SetActiveReq struct {
	Active *bool `json:"active" binding:"required"`
}

// SetTaskActive toggles the soft-active flag. Deactivation only blocks new
// starts; claims already in progress may still be completed.
func SetTaskActive(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	if !user.IsManager() {
		common.ErrorStrResp(c, "only managers can change tasks", 403)
		return
	}
	taskID, err := parseID(c)
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	var req SetActiveReq
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	if err := db.SetTaskActive(taskID, user.ID, *req.Active); err != nil {
		common.ErrorResp(c, err, errCode(err), true)
		return
	}
	common.SuccessResp(c)
}

func StartTask(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	taskID, err := parseID(c)
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	claim, err := claims.Start(taskID, user)
	if err != nil {
		common.ErrorResp(c, err, errCode(err))
		return
	}
	common.SuccessResp(c, claim)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
