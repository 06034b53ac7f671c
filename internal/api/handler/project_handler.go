package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"softdesk/internal/api/middleware"
	"softdesk/internal/dto"
	"softdesk/internal/service"
	"softdesk/pkg/responses"
	"softdesk/pkg/utils"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// Create 创建项目
// @Summary 创建项目
// @Description 创建项目并将创建者注册为owner贡献者
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateProjectRequest true "创建项目请求"
// @Success 201 {object} dto.ProjectResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.service.Create(user.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Created(c, project)
}

// List 获取项目列表
// @Summary 获取项目列表
// @Description 获取当前用户可见的项目(作者或贡献者)
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.ProjectResponse
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projects, err := h.service.List(user.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, projects)
}

// Get 获取项目详情
// @Summary 获取项目详情
// @Tags 项目
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Success 200 {object} dto.ProjectResponse
// @Router /api/v1/projects/{project_id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的项目ID", err.Error())
		return
	}

	project, err := h.service.GetByID(user.ID, projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// Update 更新项目
// @Summary 更新项目
// @Description 仅项目作者可更新
// @Tags 项目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param request body dto.UpdateProjectRequest true "更新项目请求"
// @Success 200 {object} dto.ProjectResponse
// @Router /api/v1/projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的项目ID", err.Error())
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.service.Update(user.ID, projectID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目
// @Description 仅项目作者可删除, 级联删除贡献者/问题/评论
// @Tags 项目
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Success 204
// @Router /api/v1/projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的项目ID", err.Error())
		return
	}

	if err := h.service.Delete(user.ID, projectID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.NoContent(c)
}
