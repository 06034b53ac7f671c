package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"softdesk/internal/model"
	"softdesk/internal/pkg/config"
	"softdesk/internal/pkg/logger"
	"softdesk/pkg/responses"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Name: "softdesk-test", Mode: "release"},
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:             "test-secret",
				AccessTokenExpire:  3600,
				RefreshTokenExpire: 7200,
			},
			Local: config.LocalConfig{Enabled: true},
		},
		Log: config.LogConfig{Level: "error", Format: "console", Output: "stdout"},
	}
	config.GlobalConfig = cfg
	require.NoError(t, logger.Init(&cfg.Log))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Contributor{},
		&model.Issue{},
		&model.Comment{},
	))
	cfg.DB = db

	return Setup(cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp responses.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "响应data应为对象: %s", w.Body.String())
	return data
}

func signupAndLogin(t *testing.T, r *gin.Engine, username string) (token string, userID int64) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username":         username,
		"password":         "Secret123!",
		"password_confirm": "Secret123!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userID = int64(decodeData(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username":  username,
		"password":  "Secret123!",
		"auth_type": "local",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token = decodeData(t, w)["access_token"].(string)
	return token, userID
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupValidation(t *testing.T) {
	r := setupRouter(t)

	// 密码与确认密码不一致
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username":         "alice",
		"password":         "Secret123!",
		"password_confirm": "Mismatch!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 密码太短
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username":         "alice",
		"password":         "short",
		"password_confirm": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 用户名重复
	signupAndLogin(t, r, "alice")
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username":         "alice",
		"password":         "Secret123!",
		"password_confirm": "Secret123!",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects", "invalid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	r := setupRouter(t)
	token, userID := signupAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(userID), data["id"])
	assert.Equal(t, "alice", data["username"])
}

func TestProjectLifecycle(t *testing.T) {
	r := setupRouter(t)
	aliceToken, aliceID := signupAndLogin(t, r, "alice")
	bobToken, bobID := signupAndLogin(t, r, "bob")
	malloryToken, _ := signupAndLogin(t, r, "mallory")

	// 创建项目
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", aliceToken, gin.H{
		"title": "CRM后端",
		"type":  "backend",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := int64(decodeData(t, w)["id"].(float64))

	// 未知枚举值400
	w = doJSON(t, r, http.MethodPost, "/api/v1/projects", aliceToken, gin.H{
		"title": "另一个项目",
		"type":  "desktop",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	projectPath := fmt.Sprintf("/api/v1/projects/%d", projectID)

	// 非成员404而非403
	w = doJSON(t, r, http.MethodGet, projectPath, malloryToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 添加bob为贡献者
	w = doJSON(t, r, http.MethodPost, projectPath+"/users", aliceToken, gin.H{
		"user_id": bobID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 重复添加400
	w = doJSON(t, r, http.MethodPost, projectPath+"/users", aliceToken, gin.H{
		"user_id": bobID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 贡献者可读
	w = doJSON(t, r, http.MethodGet, projectPath, bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 贡献者不可更新项目
	w = doJSON(t, r, http.MethodPut, projectPath, bobToken, gin.H{
		"title": "改名",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// PATCH与PUT等价
	w = doJSON(t, r, http.MethodPatch, projectPath, aliceToken, gin.H{
		"title": "CRM后端v2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CRM后端v2", decodeData(t, w)["title"])

	// owner不能被移除
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/users/%d", projectPath, aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 贡献者退出项目
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/users/%d", projectPath, bobID), bobToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 退出后再访问404
	w = doJSON(t, r, http.MethodGet, projectPath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 删除项目
	w = doJSON(t, r, http.MethodDelete, projectPath, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, projectPath, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueAndCommentRoutes(t *testing.T) {
	r := setupRouter(t)
	aliceToken, _ := signupAndLogin(t, r, "alice")
	bobToken, bobID := signupAndLogin(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", aliceToken, gin.H{
		"title": "CRM后端",
		"type":  "backend",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := int64(decodeData(t, w)["id"].(float64))
	projectPath := fmt.Sprintf("/api/v1/projects/%d", projectID)

	w = doJSON(t, r, http.MethodPost, projectPath+"/users", aliceToken, gin.H{"user_id": bobID})
	require.Equal(t, http.StatusCreated, w.Code)

	// bob创建问题并指派给自己
	w = doJSON(t, r, http.MethodPost, projectPath+"/issues", bobToken, gin.H{
		"title":       "登录报错",
		"description": "输入正确密码仍提示401",
		"tag":         "bug",
		"priority":    "high",
		"assigned_id": bobID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	issueData := decodeData(t, w)
	issueID := int64(issueData["id"].(float64))
	assert.Equal(t, "todo", issueData["status"])
	issuePath := fmt.Sprintf("%s/issues/%d", projectPath, issueID)

	// 非作者更新403 (即使是项目owner)
	w = doJSON(t, r, http.MethodPut, issuePath, aliceToken, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPatch, issuePath, bobToken, gin.H{"status": "pending"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "pending", decodeData(t, w)["status"])

	// 评论
	w = doJSON(t, r, http.MethodPost, issuePath+"/comments", aliceToken, gin.H{
		"description": "已复现",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	commentID := int64(decodeData(t, w)["id"].(float64))
	commentPath := fmt.Sprintf("%s/comments/%d", issuePath, commentID)

	// 非作者改评论403
	w = doJSON(t, r, http.MethodPut, commentPath, bobToken, gin.H{"description": "改掉"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// owner删除他人问题(连带评论)
	w = doJSON(t, r, http.MethodDelete, issuePath, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, commentPath, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidPathParam(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/v1/projects/not-a-number", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
