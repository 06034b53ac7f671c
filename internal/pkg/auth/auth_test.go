package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionSafe(t *testing.T) {
	assert.True(t, ActionList.Safe())
	assert.True(t, ActionRetrieve.Safe())
	assert.False(t, ActionCreate.Safe())
	assert.False(t, ActionUpdate.Safe())
	assert.False(t, ActionDelete.Safe())
}

func TestRulesFor(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		action   Action
		want     []Predicate
	}{
		{
			name:     "项目列表仅要求认证",
			resource: ResourceProject,
			action:   ActionList,
			want:     []Predicate{PredAuthenticated},
		},
		{
			name:     "项目更新要求成员且为owner",
			resource: ResourceProject,
			action:   ActionUpdate,
			want:     []Predicate{PredProjectMember, PredProjectOwner},
		},
		{
			name:     "项目删除要求成员且为owner",
			resource: ResourceProject,
			action:   ActionDelete,
			want:     []Predicate{PredProjectMember, PredProjectOwner},
		},
		{
			name:     "贡献者添加要求owner",
			resource: ResourceContributor,
			action:   ActionCreate,
			want:     []Predicate{PredProjectMember, PredProjectOwner},
		},
		{
			name:     "贡献者删除要求本人或owner",
			resource: ResourceContributor,
			action:   ActionDelete,
			want:     []Predicate{PredProjectMember, PredContributorSelfOrOwner},
		},
		{
			name:     "问题创建任意成员可执行",
			resource: ResourceIssue,
			action:   ActionCreate,
			want:     []Predicate{PredProjectMember},
		},
		{
			name:     "问题更新仅作者",
			resource: ResourceIssue,
			action:   ActionUpdate,
			want:     []Predicate{PredProjectMember, PredObjectAuthor},
		},
		{
			name:     "问题删除作者或owner",
			resource: ResourceIssue,
			action:   ActionDelete,
			want:     []Predicate{PredProjectMember, PredObjectAuthorOrOwner},
		},
		{
			name:     "评论更新仅作者",
			resource: ResourceComment,
			action:   ActionUpdate,
			want:     []Predicate{PredProjectMember, PredObjectAuthor},
		},
		{
			name:     "评论删除作者或owner",
			resource: ResourceComment,
			action:   ActionDelete,
			want:     []Predicate{PredProjectMember, PredObjectAuthorOrOwner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RulesFor(tt.resource, tt.action))
		})
	}
}

func TestRulesForUnknown(t *testing.T) {
	// 未配置的组合必须返回nil, 调用方据此拒绝
	assert.Nil(t, RulesFor(Resource("unknown"), ActionList))
	assert.Nil(t, RulesFor(ResourceProject, Action("unknown")))
}

func TestReadActionsNeverRequireOwner(t *testing.T) {
	for _, resource := range []Resource{ResourceContributor, ResourceIssue, ResourceComment} {
		for _, action := range []Action{ActionList, ActionRetrieve} {
			predicates := RulesFor(resource, action)
			assert.Equal(t, []Predicate{PredProjectMember}, predicates,
				"%s/%s 只读动作应只要求项目成员", resource, action)
		}
	}
}
