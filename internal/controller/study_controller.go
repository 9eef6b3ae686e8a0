package controller

import (
	"brainink_backend/internal/service"
	"brainink_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudyController struct {
	Study *service.StudyService
}

func NewStudyController(study *service.StudyService) *StudyController {
	return &StudyController{Study: study}
}

// @Summary 开始学习模块
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response
// @Router /blocks/{id}/study/start [post]
func (c *StudyController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	blockID := util.MustParseUint(ctx.Param("id"))
	if blockID == 0 {
		util.BadRequest(ctx, "invalid block id")
		return
	}

	session, err := c.Study.StartSession(user.UserID, blockID)
	if err != nil {
		if err == util.ErrBlockNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

type CompleteSessionRequest struct {
	Minutes int `json:"minutes"`
}

// @Summary 完成学习模块（解锁该模块的作业链）
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "模块ID"
// @Param body body CompleteSessionRequest false "学习时长"
// @Success 200 {object} util.Response
// @Router /blocks/{id}/study/complete [post]
func (c *StudyController) CompleteSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	blockID := util.MustParseUint(ctx.Param("id"))
	if blockID == 0 {
		util.BadRequest(ctx, "invalid block id")
		return
	}

	var req CompleteSessionRequest
	ctx.ShouldBindJSON(&req)

	session, err := c.Study.CompleteSession(user.UserID, blockID, req.Minutes)
	if err != nil {
		if err == util.ErrStudySessionNotFound {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, session)
}
