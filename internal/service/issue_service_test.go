package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softdesk/internal/dto"
	"softdesk/internal/model"
	pkgErrors "softdesk/pkg/responses"
)

func TestIssueCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	project := env.createProject(t, alice.ID, "内部项目")

	issue, err := env.issues.Create(alice.ID, project.ID, &dto.CreateIssueRequest{
		Title:       "登录报错",
		Description: "输入正确密码仍提示401",
		Tag:         "bug",
	})
	require.NoError(t, err)
	assert.Equal(t, "todo", issue.Status)
	assert.Equal(t, "low", issue.Priority)
	assert.Equal(t, "bug", issue.Tag)
	require.NotNil(t, issue.Author)
	assert.Equal(t, alice.ID, issue.Author.ID)
	assert.Nil(t, issue.Assigned)
}

func TestIssueCreateByContributor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	mallory := env.createUser(t, "mallory")

	project := env.createProject(t, alice.ID, "内部项目")
	env.addContributor(t, alice.ID, project.ID, bob.ID)

	issue, err := env.issues.Create(bob.ID, project.ID, &dto.CreateIssueRequest{
		Title:       "样式错位",
		Description: "移动端布局溢出",
		Tag:         "improvement",
		Priority:    "high",
	})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, issue.Author.ID)
	assert.Equal(t, "high", issue.Priority)

	// 非成员表现为项目不存在
	_, err = env.issues.Create(mallory.ID, project.ID, &dto.CreateIssueRequest{
		Title:       "x",
		Description: "x",
		Tag:         "task",
	})
	requireCode(t, err, pkgErrors.CodeNotFound)
}

func TestIssueAssignedMustBeContributor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	outsider := env.createUser(t, "outsider")

	project := env.createProject(t, alice.ID, "内部项目")
	env.addContributor(t, alice.ID, project.ID, bob.ID)

	// 指派给非贡献者失败
	_, err := env.issues.Create(alice.ID, project.ID, &dto.CreateIssueRequest{
		Title:       "登录报错",
		Description: "x",
		Tag:         "bug",
		AssignedID:  &outsider.ID,
	})
	requireCode(t, err, pkgErrors.CodeBadRequest)

	issue, err := env.issues.Create(alice.ID, project.ID, &dto.CreateIssueRequest{
		Title:       "登录报错",
		Description: "x",
		Tag:         "bug",
		AssignedID:  &bob.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, issue.Assigned)
	assert.Equal(t, bob.ID, issue.Assigned.ID)

	// 更新时同样校验
	_, err = env.issues.Update(alice.ID, project.ID, issue.ID, &dto.UpdateIssueRequest{
		AssignedID: &outsider.ID,
	})
	requireCode(t, err, pkgErrors.CodeBadRequest)
}

func TestIssueUpdateAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	project := env.createProject(t, alice.ID, "内部项目")
	env.addContributor(t, alice.ID, project.ID, bob.ID)
	issue := env.createIssue(t, bob.ID, project.ID, "登录报错")

	newStatus := "pending"

	// 项目owner也不能修改别人的问题
	_, err := env.issues.Update(alice.ID, project.ID, issue.ID, &dto.UpdateIssueRequest{
		Status: &newStatus,
	})
	requireCode(t, err, pkgErrors.CodeForbidden)

	updated, err := env.issues.Update(bob.ID, project.ID, issue.ID, &dto.UpdateIssueRequest{
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", updated.Status)
	assert.Equal(t, issue.Title, updated.Title)
	assert.Equal(t, issue.CreatedTime, updated.CreatedTime)
}

func TestIssueDeleteAuthorOrOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	project := env.createProject(t, alice.ID, "内部项目")
	env.addContributor(t, alice.ID, project.ID, bob.ID)
	env.addContributor(t, alice.ID, project.ID, carol.ID)

	issue := env.createIssue(t, bob.ID, project.ID, "登录报错")

	// 无关贡献者不能删除
	err := env.issues.Delete(carol.ID, project.ID, issue.ID)
	requireCode(t, err, pkgErrors.CodeForbidden)

	// 项目owner可以删除他人的问题
	require.NoError(t, env.issues.Delete(alice.ID, project.ID, issue.ID))

	// 作者可以删除自己的问题
	issue = env.createIssue(t, bob.ID, project.ID, "样式错位")
	require.NoError(t, env.issues.Delete(bob.ID, project.ID, issue.ID))
}

func TestIssueDeleteCascadesComments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	project := env.createProject(t, alice.ID, "内部项目")
	issue := env.createIssue(t, alice.ID, project.ID, "登录报错")
	env.createComment(t, alice.ID, project.ID, issue.ID, "已复现")
	env.createComment(t, alice.ID, project.ID, issue.ID, "修复中")

	require.NoError(t, env.issues.Delete(alice.ID, project.ID, issue.ID))

	var count int64
	require.NoError(t, env.db.Model(&model.Comment{}).Where("issue_id = ?", issue.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIssueCrossProjectNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	p1 := env.createProject(t, alice.ID, "项目一")
	p2 := env.createProject(t, alice.ID, "项目二")
	issue := env.createIssue(t, alice.ID, p1.ID, "登录报错")

	// 问题存在但挂在别的项目下, 照样404
	_, err := env.issues.GetByID(alice.ID, p2.ID, issue.ID)
	requireCode(t, err, pkgErrors.CodeNotFound)
}
