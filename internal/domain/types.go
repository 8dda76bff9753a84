package domain

import (
	"strconv"
	"time"
)

// User is a ClickUp user as the API renders it. The v1 API uses camelCase
// for profilePicture.
type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Color          string  `json:"color"`
	Initials       string  `json:"initials"`
	ProfilePicture *string `json:"profilePicture"`
}

// Member wraps a user inside a team's member list.
type Member struct {
	User User `json:"user"`
}

// Team is a workspace.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Avatar  *string  `json:"avatar"`
	Members []Member `json:"members"`
}

// HasMember reports whether userID belongs to the team.
func (t *Team) HasMember(userID int64) bool {
	for _, m := range t.Members {
		if m.User.ID == userID {
			return true
		}
	}
	return false
}

// Status is a workflow status.
type Status struct {
	Status     string `json:"status"`
	Type       string `json:"type"`
	OrderIndex int    `json:"orderindex"`
	Color      string `json:"color"`
}

// StatusTypeClosed marks statuses hidden unless include_closed is set.
const StatusTypeClosed = "closed"

// DefaultStatuses are used by projects that do not override statuses.
func DefaultStatuses() []Status {
	return []Status{
		{Status: "Open", Type: "open", OrderIndex: 0, Color: "#d3d3d3"},
		{Status: "todo", Type: "custom", OrderIndex: 1, Color: "#ff00df"},
		{Status: "in progress", Type: "custom", OrderIndex: 2, Color: "#f6762b"},
		{Status: "in review", Type: "custom", OrderIndex: 3, Color: "#08adff"},
		{Status: "Closed", Type: "closed", OrderIndex: 4, Color: "#6bc950"},
	}
}

// Space belongs to a team.
type Space struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Private  bool     `json:"private"`
	Statuses []Status `json:"statuses"`

	TeamID string `json:"-"`
}

// List belongs to a project.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project belongs to a space and carries its lists inline.
type Project struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	OverrideStatuses bool     `json:"override_statuses"`
	Statuses         []Status `json:"statuses"`
	Lists            []List   `json:"lists"`

	SpaceID string `json:"-"`
}

// EffectiveStatuses returns the statuses tasks in the project may use.
func (p *Project) EffectiveStatuses() []Status {
	if p.OverrideStatuses {
		return p.Statuses
	}
	return DefaultStatuses()
}

// PriorityInfo is how the API renders a task priority.
type PriorityInfo struct {
	ID         string `json:"id"`
	Priority   string `json:"priority"`
	Color      string `json:"color"`
	OrderIndex string `json:"orderindex"`
}

var priorities = []PriorityInfo{
	{ID: "1", Priority: "urgent", Color: "#f50000", OrderIndex: "1"},
	{ID: "2", Priority: "high", Color: "#ffcc00", OrderIndex: "2"},
	{ID: "3", Priority: "normal", Color: "#6fddff", OrderIndex: "3"},
	{ID: "4", Priority: "low", Color: "#d8d8d8", OrderIndex: "4"},
}

// ValidPriority checks if the priority value is within valid range (1-4).
func ValidPriority(p int) bool {
	return p >= 1 && p <= 4
}

// PriorityFor returns the rendering of p, or nil for no priority.
func PriorityFor(p int) *PriorityInfo {
	if !ValidPriority(p) {
		return nil
	}
	info := priorities[p-1]
	return &info
}

// Tag is a task tag.
type Tag struct {
	Name string `json:"name"`
	Fg   string `json:"tag_fg"`
	Bg   string `json:"tag_bg"`
}

// Ref points at a parent container by id.
type Ref struct {
	ID string `json:"id"`
}

// CustomField is a custom field value set on a task.
type CustomField struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// Task is a task. Timestamps are millisecond strings, as the API sends them.
type Task struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Content      string        `json:"content"`
	Status       Status        `json:"status"`
	Creator      User          `json:"creator"`
	Tags         []Tag         `json:"tags"`
	Assignees    []User        `json:"assignees"`
	Priority     *PriorityInfo `json:"priority"`
	Parent       *string       `json:"parent"`
	DueDate      *string       `json:"due_date"`
	StartDate    *string       `json:"start_date"`
	DateCreated  string        `json:"date_created"`
	DateUpdated  string        `json:"date_updated"`
	DateClosed   *string       `json:"date_closed"`
	TeamID       string        `json:"team_id"`
	List         Ref           `json:"list"`
	Project      Ref           `json:"project"`
	Space        Ref           `json:"space"`
	CustomFields []CustomField `json:"custom_fields"`
	URL          string        `json:"url"`
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	t.Tags = append([]Tag{}, t.Tags...)
	t.Assignees = append([]User{}, t.Assignees...)
	t.CustomFields = append([]CustomField{}, t.CustomFields...)
	return t
}

// Comment is a comment on a task, list or view.
type Comment struct {
	ID          string `json:"id"`
	CommentText string `json:"comment_text"`
	User        User   `json:"user"`
	Assignee    *User  `json:"assignee"`
	Resolved    bool   `json:"resolved"`
	Date        string `json:"date"`

	Target   string `json:"-"`
	TargetID string `json:"-"`
}

// CommentTargets are the object kinds comments can be attached to.
var CommentTargets = []string{"task", "list", "view"}

// ValidCommentTarget checks kind against CommentTargets.
func ValidCommentTarget(kind string) bool {
	for _, k := range CommentTargets {
		if k == kind {
			return true
		}
	}
	return false
}

// Millis renders t as a millisecond timestamp string.
func Millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// ParseMillis parses a millisecond timestamp string; invalid input yields 0.
func ParseMillis(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
