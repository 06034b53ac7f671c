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

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}

// pathIDs 解析评论路径上的项目ID和问题ID
func (h *CommentHandler) pathIDs(c *gin.Context) (projectID, issueID int64, ok bool) {
	projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的项目ID", err.Error())
		return 0, 0, false
	}

	issueID, err = strconv.ParseInt(c.Param("issue_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的问题ID", err.Error())
		return 0, 0, false
	}

	return projectID, issueID, true
}

// List 获取问题评论列表
// @Summary 获取问题评论列表
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Success 200 {array} dto.CommentResponse
// @Router /api/v1/projects/{project_id}/issues/{issue_id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, issueID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	comments, err := h.service.List(user.ID, projectID, issueID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, comments)
}

// Create 创建评论
// @Summary 创建评论
// @Description 任意项目贡献者可创建
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Param request body dto.CreateCommentRequest true "创建评论请求"
// @Success 201 {object} dto.CommentResponse
// @Router /api/v1/projects/{project_id}/issues/{issue_id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, issueID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	comment, err := h.service.Create(user.ID, projectID, issueID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Created(c, comment)
}

// Get 获取评论详情
// @Summary 获取评论详情
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Param comment_id path int true "评论ID"
// @Success 200 {object} dto.CommentResponse
// @Router /api/v1/projects/{project_id}/issues/{issue_id}/comments/{comment_id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, issueID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的评论ID", err.Error())
		return
	}

	comment, err := h.service.GetByID(user.ID, projectID, issueID, commentID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, comment)
}

// Update 更新评论
// @Summary 更新评论
// @Description 仅评论作者可更新
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Param comment_id path int true "评论ID"
// @Param request body dto.UpdateCommentRequest true "更新评论请求"
// @Success 200 {object} dto.CommentResponse
// @Router /api/v1/projects/{project_id}/issues/{issue_id}/comments/{comment_id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, issueID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的评论ID", err.Error())
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	comment, err := h.service.Update(user.ID, projectID, issueID, commentID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, comment)
}

// Delete 删除评论
// @Summary 删除评论
// @Description 评论作者或项目作者可删除
// @Tags 评论
// @Security ApiKeyAuth
// @Param project_id path int true "项目ID"
// @Param issue_id path int true "问题ID"
// @Param comment_id path int true "评论ID"
// @Success 204
// @Router /api/v1/projects/{project_id}/issues/{issue_id}/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		responses.ErrorWithCode(c, 401, "未登录")
		return
	}

	projectID, issueID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的评论ID", err.Error())
		return
	}

	if err := h.service.Delete(user.ID, projectID, issueID, commentID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.NoContent(c)
}
