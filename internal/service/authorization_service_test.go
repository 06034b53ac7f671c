package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"softdesk/internal/pkg/auth"
)

func TestCanDeniesUnknownCombination(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	assert.False(t, env.authz.Can(alice.ID, auth.Resource("unknown"), auth.ActionList, &auth.Target{}))
	assert.False(t, env.authz.Can(alice.ID, auth.ResourceProject, auth.Action("unknown"), &auth.Target{}))
}

func TestCanShortCircuitsOnMembership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	mallory := env.createUser(t, "mallory")

	project := env.createProject(t, alice.ID, "内部项目")

	// 非成员在第一个谓词就被拒绝
	assert.False(t, env.authz.Can(mallory.ID, auth.ResourceIssue, auth.ActionCreate, &auth.Target{ProjectID: project.ID}))
	assert.True(t, env.authz.Can(alice.ID, auth.ResourceIssue, auth.ActionCreate, &auth.Target{ProjectID: project.ID}))
}

func TestIsProjectOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	project := env.createProject(t, alice.ID, "内部项目")
	env.addContributor(t, alice.ID, project.ID, bob.ID)

	assert.True(t, env.authz.IsProjectOwner(alice.ID, project.ID))
	assert.False(t, env.authz.IsProjectOwner(bob.ID, project.ID))
	assert.False(t, env.authz.IsProjectOwner(alice.ID, 99999))
}
