package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"softdesk/internal/dto"
	"softdesk/internal/model"
	"softdesk/internal/repository"
	"softdesk/pkg/constants"
	pkgErrors "softdesk/pkg/responses"
)

// requireCode 断言错误携带预期的业务错误码
func requireCode(t *testing.T, err error, code int) {
	t.Helper()

	var appErr *pkgErrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}

// setupTestDB 每个测试用独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}

type testEnv struct {
	db *gorm.DB

	userRepo        repository.UserRepository
	projectRepo     repository.ProjectRepository
	contributorRepo repository.ContributorRepository
	issueRepo       repository.IssueRepository
	commentRepo     repository.CommentRepository

	authz        AuthorizationService
	projects     ProjectService
	contributors ContributorService
	issues       IssueService
	comments     CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authz := NewAuthorizationService(contributorRepo)

	return &testEnv{
		db:              db,
		userRepo:        userRepo,
		projectRepo:     projectRepo,
		contributorRepo: contributorRepo,
		issueRepo:       issueRepo,
		commentRepo:     commentRepo,
		authz:           authz,
		projects:        NewProjectService(db, projectRepo, userRepo, authz),
		contributors:    NewContributorService(contributorRepo, projectRepo, userRepo, authz),
		issues:          NewIssueService(issueRepo, projectRepo, contributorRepo, authz),
		comments:        NewCommentService(commentRepo, issueRepo, projectRepo, authz),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()

	user := &model.User{
		AuthProvider: constants.AuthTypeLocal,
		Username:     username,
		Password:     "hashed",
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

// createProject 经由服务创建, 连带owner贡献者行
func (e *testEnv) createProject(t *testing.T, authorID int64, title string) *dto.ProjectResponse {
	t.Helper()

	project, err := e.projects.Create(authorID, &dto.CreateProjectRequest{
		Title: title,
		Type:  "backend",
	})
	require.NoError(t, err)
	return project
}

func (e *testEnv) addContributor(t *testing.T, ownerID, projectID, userID int64) *dto.ContributorResponse {
	t.Helper()

	contributor, err := e.contributors.Create(ownerID, projectID, &dto.CreateContributorRequest{
		UserID: userID,
	})
	require.NoError(t, err)
	return contributor
}

func (e *testEnv) createIssue(t *testing.T, authorID, projectID int64, title string) *dto.IssueResponse {
	t.Helper()

	issue, err := e.issues.Create(authorID, projectID, &dto.CreateIssueRequest{
		Title:       title,
		Description: "description of " + title,
		Tag:         "bug",
	})
	require.NoError(t, err)
	return issue
}

func (e *testEnv) createComment(t *testing.T, authorID, projectID, issueID int64, text string) *dto.CommentResponse {
	t.Helper()

	comment, err := e.comments.Create(authorID, projectID, issueID, &dto.CreateCommentRequest{
		Description: text,
	})
	require.NoError(t, err)
	return comment
}
