package controller

import (
	"brainink_backend/internal/service"
	"brainink_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *service.ProgressService
}

func NewProgressController(progress *service.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// @Summary 课程学习进度
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /progress/courses/{id} [get]
func (c *ProgressController) CourseProgress(ctx *gin.Context) {
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

	progress, err := c.Progress.CourseProgress(user.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 每周学习活动
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param weeks query int false "周数，默认4"
// @Success 200 {object} util.Response
// @Router /progress/weekly [get]
func (c *ProgressController) WeeklyActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	weeks, _ := strconv.Atoi(ctx.DefaultQuery("weeks", "4"))
	activity, err := c.Progress.WeeklyActivity(user.UserID, weeks)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}
