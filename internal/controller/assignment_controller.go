package controller

import (
	"brainink_backend/internal/service"
	"brainink_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Assignments *service.AssignmentService
}

func NewAssignmentController(assignments *service.AssignmentService) *AssignmentController {
	return &AssignmentController{Assignments: assignments}
}

// @Summary 课程作业列表（含门控状态）
// @Description 返回学生在该课程下的全部作业：已分配的真实记录加上尚未分配的定义，
// @Description 每条都带 locked/passed/failed、状态标签、锁定原因与导航动作。
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /courses/{id}/assignments [get]
func (c *AssignmentController) ListForCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	views, err := c.Assignments.ListForStudent(user.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary 单个作业详情（含门控状态）
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生作业ID"
// @Success 200 {object} util.Response
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	view, err := c.Assignments.GetView(user.UserID, id)
	if err != nil {
		c.writeAssignmentError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 提交作业
// @Description 文本走表单字段 text，附件走 multipart 字段 file。被锁定的作业会被服务端拒绝。
// @Tags 作业
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生作业ID"
// @Success 200 {object} util.Response
// @Router /assignments/{id}/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	req := service.SubmitRequest{Text: ctx.PostForm("text")}

	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer file.Close()
		req.File = file
		req.FileName = fileHeader.Filename
		req.FileSize = fileHeader.Size
		req.ContentType = fileHeader.Header.Get("Content-Type")
	}

	sa, err := c.Assignments.Submit(ctx.Request.Context(), user.UserID, id, req)
	if err != nil {
		c.writeAssignmentError(ctx, err)
		return
	}
	util.Success(ctx, sa)
}

// @Summary 作业成绩详情
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生作业ID"
// @Success 200 {object} util.Response
// @Router /assignments/{id}/grade [get]
func (c *AssignmentController) GradeDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	sa, err := c.Assignments.GradeDetail(user.UserID, id)
	if err != nil {
		c.writeAssignmentError(ctx, err)
		return
	}
	util.Success(ctx, sa)
}

type AssignRequest struct {
	UserID       uint `json:"userId" binding:"required"`
	AssignmentID uint `json:"assignmentId" binding:"required"`
}

// @Summary 给学生分配作业
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AssignRequest true "分配信息"
// @Success 201 {object} util.Response
// @Router /teacher/assignments/assign [post]
func (c *AssignmentController) Assign(ctx *gin.Context) {
	var req AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sa, err := c.Assignments.Assign(req.UserID, req.AssignmentID)
	if err != nil {
		c.writeAssignmentError(ctx, err)
		return
	}
	util.Created(ctx, sa)
}

// @Summary 创建作业定义
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssignmentCreateRequest true "作业定义"
// @Success 201 {object} util.Response
// @Router /teacher/assignments [post]
func (c *AssignmentController) CreateDefinition(ctx *gin.Context) {
	var req service.AssignmentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	def, err := c.Assignments.CreateDefinition(req)
	if err != nil {
		c.writeAssignmentError(ctx, err)
		return
	}
	util.Created(ctx, def)
}

func (c *AssignmentController) writeAssignmentError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrAssignmentNotFound, util.ErrCourseNotFound, util.ErrBlockNotFound:
		util.NotFound(ctx)
	case util.ErrPermissionDenied:
		util.Forbidden(ctx)
	case util.ErrAssignmentLocked:
		util.Error(ctx, http.StatusConflict, err.Error())
	case util.ErrAlreadyAssigned, util.ErrAlreadyPassed:
		util.Error(ctx, http.StatusConflict, err.Error())
	case util.ErrNothingSubmitted, util.ErrNotAttempted:
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
