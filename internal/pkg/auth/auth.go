package auth

// Action 请求动作
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Safe 只读动作
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

// Resource 资源类型
type Resource string

const (
	ResourceProject     Resource = "project"
	ResourceContributor Resource = "contributor"
	ResourceIssue       Resource = "issue"
	ResourceComment     Resource = "comment"
)

// Predicate 权限判定谓词
// 每个资源的每个动作对应一个有序谓词列表, 逐个求值并做短路AND
type Predicate string

const (
	// PredAuthenticated 任何已认证用户
	PredAuthenticated Predicate = "authenticated"
	// PredProjectMember 当前用户是项目贡献者(作者的owner行也算)
	PredProjectMember Predicate = "project:member"
	// PredProjectOwner 当前用户持有项目的owner贡献者行
	PredProjectOwner Predicate = "project:owner"
	// PredObjectAuthor 当前用户是目标对象的author
	PredObjectAuthor Predicate = "object:author"
	// PredObjectAuthorOrOwner 目标对象的author或项目owner
	PredObjectAuthorOrOwner Predicate = "object:author_or_owner"
	// PredContributorSelfOrOwner 被删贡献者本人或项目owner; owner行本身不可删
	PredContributorSelfOrOwner Predicate = "contributor:self_or_owner"
)

// rules 各资源按动作配置的谓词列表
// 只读动作通过集合级成员判定后不再做对象级校验
var rules = map[Resource]map[Action][]Predicate{
	ResourceProject: {
		ActionList:     {PredAuthenticated},
		ActionRetrieve: {PredProjectMember},
		ActionCreate:   {PredAuthenticated},
		ActionUpdate:   {PredProjectMember, PredProjectOwner},
		ActionDelete:   {PredProjectMember, PredProjectOwner},
	},
	ResourceContributor: {
		ActionList:     {PredProjectMember},
		ActionRetrieve: {PredProjectMember},
		ActionCreate:   {PredProjectMember, PredProjectOwner},
		ActionUpdate:   {PredProjectMember, PredProjectOwner},
		ActionDelete:   {PredProjectMember, PredContributorSelfOrOwner},
	},
	ResourceIssue: {
		ActionList:     {PredProjectMember},
		ActionRetrieve: {PredProjectMember},
		ActionCreate:   {PredProjectMember},
		ActionUpdate:   {PredProjectMember, PredObjectAuthor},
		ActionDelete:   {PredProjectMember, PredObjectAuthorOrOwner},
	},
	ResourceComment: {
		ActionList:     {PredProjectMember},
		ActionRetrieve: {PredProjectMember},
		ActionCreate:   {PredProjectMember},
		ActionUpdate:   {PredProjectMember, PredObjectAuthor},
		ActionDelete:   {PredProjectMember, PredObjectAuthorOrOwner},
	},
}

// RulesFor 返回资源/动作对应的谓词列表
// 未配置的组合返回nil, 调用方必须视为拒绝
func RulesFor(resource Resource, action Action) []Predicate {
	actions, ok := rules[resource]
	if !ok {
		return nil
	}
	return actions[action]
}

// Target 对象级判定所需的目标信息
type Target struct {
	ProjectID int64
	// AuthorID 目标对象的作者 (issue/comment)
	AuthorID int64
	// ContributorUserID / ContributorRole 被操作的贡献者行 (contributor delete)
	ContributorUserID int64
	ContributorRole   int8
}
