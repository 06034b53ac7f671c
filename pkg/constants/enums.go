package constants

import "fmt"

// ProjectType 项目类型
const (
	ProjectTypeBackend  int8 = 0
	ProjectTypeFrontend int8 = 1
	ProjectTypeIOS      int8 = 2
	ProjectTypeAndroid  int8 = 3
)

var projectTypeName = map[int8]string{
	ProjectTypeBackend:  "backend",
	ProjectTypeFrontend: "frontend",
	ProjectTypeIOS:      "ios",
	ProjectTypeAndroid:  "android",
}

// ContributorRole 贡献者角色
const (
	ContributorRoleOwner       int8 = 1
	ContributorRoleContributor int8 = 2
)

var contributorRoleName = map[int8]string{
	ContributorRoleOwner:       "owner",
	ContributorRoleContributor: "contributor",
}

// ContributorPermission 贡献者权限等级
const (
	ContributorPermissionRead   int8 = 1
	ContributorPermissionWrite  int8 = 2
	ContributorPermissionDelete int8 = 3
)

var contributorPermissionName = map[int8]string{
	ContributorPermissionRead:   "read",
	ContributorPermissionWrite:  "write",
	ContributorPermissionDelete: "delete",
}

// IssueStatus 问题状态
const (
	IssueStatusTodo     int8 = 0
	IssueStatusPending  int8 = 1
	IssueStatusFinished int8 = 2
)

var issueStatusName = map[int8]string{
	IssueStatusTodo:     "todo",
	IssueStatusPending:  "pending",
	IssueStatusFinished: "finished",
}

// IssueTag 问题标签
const (
	IssueTagBug         int8 = 0
	IssueTagImprovement int8 = 1
	IssueTagTask        int8 = 2
)

var issueTagName = map[int8]string{
	IssueTagBug:         "bug",
	IssueTagImprovement: "improvement",
	IssueTagTask:        "task",
}

// IssuePriority 问题优先级
const (
	IssuePriorityLow     int8 = 0
	IssuePriorityAverage int8 = 1
	IssuePriorityHigh    int8 = 2
)

var issuePriorityName = map[int8]string{
	IssuePriorityLow:     "low",
	IssuePriorityAverage: "average",
	IssuePriorityHigh:    "high",
}

func toString(names map[int8]string, value int8) string {
	if name, ok := names[value]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", value)
}

func parse(names map[int8]string, label string) (int8, error) {
	for value, name := range names {
		if name == label {
			return value, nil
		}
	}
	return 0, fmt.Errorf("未知的枚举值: %s", label)
}

// ProjectTypeToString int8 → string
func ProjectTypeToString(value int8) string { return toString(projectTypeName, value) }

// ParseProjectType string → int8
func ParseProjectType(label string) (int8, error) { return parse(projectTypeName, label) }

// ContributorRoleToString int8 → string
func ContributorRoleToString(value int8) string { return toString(contributorRoleName, value) }

// ContributorPermissionToString int8 → string
func ContributorPermissionToString(value int8) string {
	return toString(contributorPermissionName, value)
}

// ParseContributorPermission string → int8
func ParseContributorPermission(label string) (int8, error) {
	return parse(contributorPermissionName, label)
}

// IssueStatusToString int8 → string
func IssueStatusToString(value int8) string { return toString(issueStatusName, value) }

// ParseIssueStatus string → int8
func ParseIssueStatus(label string) (int8, error) { return parse(issueStatusName, label) }

// IssueTagToString int8 → string
func IssueTagToString(value int8) string { return toString(issueTagName, value) }

// ParseIssueTag string → int8
func ParseIssueTag(label string) (int8, error) { return parse(issueTagName, label) }

// IssuePriorityToString int8 → string
func IssuePriorityToString(value int8) string { return toString(issuePriorityName, value) }

// ParseIssuePriority string → int8
func ParseIssuePriority(label string) (int8, error) { return parse(issuePriorityName, label) }
