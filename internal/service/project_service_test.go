package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softdesk/internal/dto"
	"softdesk/internal/model"
	"softdesk/pkg/constants"
	pkgErrors "softdesk/pkg/responses"
)

func TestProjectCreateRegistersOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	project, err := env.projects.Create(alice.ID, &dto.CreateProjectRequest{
		Title: "CRM后端",
		Type:  "backend",
	})
	require.NoError(t, err)
	assert.Equal(t, "CRM后端", project.Title)
	assert.Equal(t, "backend", project.Type)
	require.NotNil(t, project.Author)
	assert.Equal(t, alice.ID, project.Author.ID)

	// 创建者的owner贡献者行必须与项目同时存在
	contributor, err := env.contributorRepo.FindByProjectAndUser(project.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ContributorRoleOwner, contributor.Role)
	assert.Equal(t, constants.ContributorPermissionDelete, contributor.Permission)
}

func TestProjectCreateDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	env.createProject(t, alice.ID, "CRM后端")

	_, err := env.projects.Create(bob.ID, &dto.CreateProjectRequest{
		Title: "CRM后端",
		Type:  "frontend",
	})
	requireCode(t, err, pkgErrors.CodeBadRequest)

	// 失败的创建不能留下孤儿贡献者行
	var count int64
	require.NoError(t, env.db.Model(&model.Contributor{}).Where("user_id = ?", bob.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProjectCreateInvalidType(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.projects.Create(alice.ID, &dto.CreateProjectRequest{
		Title: "CRM后端",
		Type:  "desktop",
	})
	requireCode(t, err, pkgErrors.CodeBadRequest)
}

func TestProjectListOnlyVisible(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	p1 := env.createProject(t, alice.ID, "Alice的项目")
	env.createProject(t, bob.ID, "Bob的项目")
	env.addContributor(t, alice.ID, p1.ID, carol.ID)

	// carol只是p1的贡献者
	visible, err := env.projects.List(carol.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, p1.ID, visible[0].ID)

	// alice看到自己的项目
	visible, err = env.projects.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, p1.ID, visible[0].ID)
}

func TestProjectGetOutsiderNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	mallory := env.createUser(t, "mallory")

	project := env.createProject(t, alice.ID, "内部项目")

	// 非成员不能得知项目存在, 必须是404而非403
	_, err := env.projects.GetByID(mallory.ID, project.ID)
	requireCode(t, err, pkgErrors.CodeNotFound)

	_, err = env.projects.GetByID(alice.ID, 99999)
	requireCode(t, err, pkgErrors.CodeNotFound)
}

func TestProjectUpdateOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	project := env.createProject(t, alice.ID, "内部项目")
	env.addContributor(t, alice.ID, project.ID, bob.ID)

	newTitle := "更名后的项目"
	_, err := env.projects.Update(bob.ID, project.ID, &dto.UpdateProjectRequest{Title: &newTitle})
	requireCode(t, err, pkgErrors.CodeForbidden)

	updated, err := env.projects.Update(alice.ID, project.ID, &dto.UpdateProjectRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
}

func TestProjectUpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	project := env.createProject(t, alice.ID, "内部项目")

	newType := "ios"
	updated, err := env.projects.Update(alice.ID, project.ID, &dto.UpdateProjectRequest{Type: &newType})
	require.NoError(t, err)
	assert.Equal(t, "ios", updated.Type)
	assert.Equal(t, "内部项目", updated.Title)
}

func TestProjectDeleteCascade(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	project := env.createProject(t, alice.ID, "内部项目")
	env.addContributor(t, alice.ID, project.ID, bob.ID)
	issue := env.createIssue(t, bob.ID, project.ID, "登录报错")
	env.createComment(t, bob.ID, project.ID, issue.ID, "已复现")

	// 贡献者不可删除项目
	err := env.projects.Delete(bob.ID, project.ID)
	requireCode(t, err, pkgErrors.CodeForbidden)

	require.NoError(t, env.projects.Delete(alice.ID, project.ID))

	// 项目及其附属资源全部消失
	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"projects", &model.Project{}},
		{"contributors", &model.Contributor{}},
		{"issues", &model.Issue{}},
		{"comments", &model.Comment{}},
	} {
		var count int64
		require.NoError(t, env.db.Model(check.model).Count(&count).Error)
		assert.Zero(t, count, "%s 应全部被级联删除", check.name)
	}
}
