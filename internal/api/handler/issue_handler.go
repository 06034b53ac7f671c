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

type IssueHandler struct {
	service service.IssueService
}

func NewIssueHandler(service service.IssueService) *IssueHandler {
	return &IssueHandler{
		service: service,
	}
}

// List 获取项目问题列表
// @Summary 获取项目问题列表
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Success 200 {array} dto.IssueResponse
// @Router /api/v1/projects/{project_id}/issues [get]
func (h *IssueHandler) List(c *gin.Context) {
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

	issues, err := h.service.List(user.ID, projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, issues)
}

// Create 创建问题
// @Summary 创建问题
// @Description 任意项目贡献者可创建, 指派人必须是项目贡献者
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param request body dto.CreateIssueRequest true "创建问题请求"
// @Success 201 {object} dto.IssueResponse
// @Router /api/v1/projects/{project_id}/issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
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

	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	issue, err := h.service.Create(user.ID, projectID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Created(c, issue)
}

// Get 获取问题详情
// @Summary 获取问题详情
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Success 200 {object} dto.IssueResponse
// @Router /api/v1/projects/{project_id}/issues/{issue_id} [get]
func (h *IssueHandler) Get(c *gin.Context) {
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

	issueID, err := strconv.ParseInt(c.Param("issue_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的问题ID", err.Error())
		return
	}

	issue, err := h.service.GetByID(user.ID, projectID, issueID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, issue)
}

// Update 更新问题
// @Summary 更新问题
// @Description 仅问题作者可更新
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Param request body dto.UpdateIssueRequest true "更新问题请求"
// @Success 200 {object} dto.IssueResponse
// @Router /api/v1/projects/{project_id}/issues/{issue_id} [put]
func (h *IssueHandler) Update(c *gin.Context) {
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

	issueID, err := strconv.ParseInt(c.Param("issue_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的问题ID", err.Error())
		return
	}

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	issue, err := h.service.Update(user.ID, projectID, issueID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, issue)
}

// Delete 删除问题
// @Summary 删除问题
// @Description 问题作者或项目作者可删除, 级联删除评论
// @Tags 问题
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Success 204
// @Router /api/v1/projects/{project_id}/issues/{issue_id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
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

	issueID, err := strconv.ParseInt(c.Param("issue_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的问题ID", err.Error())
		return
	}

	if err := h.service.Delete(user.ID, projectID, issueID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.NoContent(c)
}
