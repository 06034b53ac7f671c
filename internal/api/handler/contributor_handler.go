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

type ContributorHandler struct {
	service service.ContributorService
}

func NewContributorHandler(service service.ContributorService) *ContributorHandler {
	return &ContributorHandler{
		service: service,
	}
}

// List 获取项目贡献者列表
// @Summary 获取项目贡献者列表
// @Tags 贡献者
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Success 200 {array} dto.ContributorResponse
// @Router /api/v1/projects/{project_id}/users [get]
func (h *ContributorHandler) List(c *gin.Context) {
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

	contributors, err := h.service.List(user.ID, projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, contributors)
}

// Create 添加项目贡献者
// @Summary 添加项目贡献者
// @Description 仅项目作者可添加贡献者
// @Tags 贡献者
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param request body dto.CreateContributorRequest true "添加贡献者请求"
// @Success 201 {object} dto.ContributorResponse
// @Router /api/v1/projects/{project_id}/users [post]
func (h *ContributorHandler) Create(c *gin.Context) {
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

	var req dto.CreateContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	contributor, err := h.service.Create(user.ID, projectID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Created(c, contributor)
}

// Get 获取项目贡献者详情
// @Summary 获取项目贡献者详情
// @Tags 贡献者
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param user_id path int true "用户ID"
// @Success 200 {object} dto.ContributorResponse
// @Router /api/v1/projects/{project_id}/users/{user_id} [get]
func (h *ContributorHandler) Get(c *gin.Context) {
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

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的用户ID", err.Error())
		return
	}

	contributor, err := h.service.GetByUser(user.ID, projectID, userID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, contributor)
}

// Update 更新项目贡献者
// @Summary 更新项目贡献者权限
// @Description 仅项目作者可更新, 角色不可变更
// @Tags 贡献者
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param user_id path int true "用户ID"
// @Param request body dto.UpdateContributorRequest true "更新贡献者请求"
// @Success 200 {object} dto.ContributorResponse
// @Router /api/v1/projects/{project_id}/users/{user_id} [put]
func (h *ContributorHandler) Update(c *gin.Context) {
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

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的用户ID", err.Error())
		return
	}

	var req dto.UpdateContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	contributor, err := h.service.Update(user.ID, projectID, userID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, contributor)
}

// Delete 移除项目贡献者
// @Summary 移除项目贡献者
// @Description 仅项目作者可移除, owner本人不可移除
// @Tags 贡献者
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param user_id path int true "用户ID"
// @Success 204
// @Router /api/v1/projects/{project_id}/users/{user_id} [delete]
func (h *ContributorHandler) Delete(c *gin.Context) {
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

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的用户ID", err.Error())
		return
	}

	if err := h.service.Delete(user.ID, projectID, userID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.NoContent(c)
}
