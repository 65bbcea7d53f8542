package handles

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/taskproof/taskproof/internal/claims"
	"github.com/taskproof/taskproof/internal/db"
	"github.com/taskproof/taskproof/internal/errs"
	"github.com/taskproof/taskproof/internal/storage"
	"github.com/taskproof/taskproof/server/common"
)

var store *storage.Storage

// Init wires the blob store used by completion handlers.
func Init(s *storage.Storage) {
	store = s
}

// CompleteClaim accepts the multipart "files" batch and runs the completed
// transition. The whole batch succeeds or the claim stays in_progress.
func CompleteClaim(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	claimID, err := parseID(c)
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	headers := form.File["files"]
	batch := make([]claims.File, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		batch = append(batch, claims.File{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	claim, err := claims.Complete(claimID, user, store, batch)
	if err != nil {
		common.ErrorResp(c, err, errCode(err))
		return
	}
	common.SuccessResp(c, claim)
}

// MyClaims lists the caller's claims, newest first, with their uploads.
func MyClaims(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	list, total, err := db.ListUserClaims(user.ID, page, listPageSize)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, common.PageResp{
		Content: list,
		Total:   total,
	})
}

func errCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		return 403
	case errors.Is(err, errs.ErrTaskNotFound), errors.Is(err, errs.ErrClaimNotFound):
		return 404
	case errors.Is(err, errs.ErrTaskInactive),
		errors.Is(err, errs.ErrAlreadyClaimed),
		errors.Is(err, errs.ErrAlreadyCompleted):
		return 409
	case errors.Is(err, errs.ErrClaimExpired):
		return 410
	case errors.Is(err, errs.ErrWrongFileCount), errors.Is(err, errs.ErrInvalidFile):
		return 422
	default:
		return 500
	}
}
