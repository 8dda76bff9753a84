package clickup

import "fmt"

// Assignee is anything that resolves to a user id: a *User or a UserID.
type Assignee interface {
	AssigneeID() int64
}

// UserID is a bare user id usable wherever an Assignee is accepted.
type UserID int64

// AssigneeID implements Assignee.
func (id UserID) AssigneeID() int64 {
	return int64(id)
}

// User is a ClickUp user.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Initials       string `json:"initials,omitempty"`
	Color          string `json:"color"`
	ProfilePicture string `json:"profile_picture"`

	// Team is set for team members.
	Team *Team `json:"-"`

	Attrs  Object `json:"-"`
	client *Client
}

// NewUser builds a User from a bare user object.
func NewUser(c *Client, data map[string]interface{}) *User {
	attrs := NewObject(data, nil)
	return &User{
		ID:             attrs.Int("id"),
		Username:       attrs.String("username"),
		Email:          attrs.String("email"),
		Initials:       attrs.String("initials"),
		Color:          attrs.String("color"),
		ProfilePicture: attrs.String("profile_picture"),
		Attrs:          attrs,
		client:         c,
	}
}

// NewUserFromEnvelope builds a User from {"user": {...}}, the shape used by
// GET user and by team member lists. A missing envelope yields a User with
// no fields.
func NewUserFromEnvelope(c *Client, data map[string]interface{}) *User {
	inner, _ := data["user"].(map[string]interface{})
	if inner == nil {
		inner = map[string]interface{}{}
	}
	return NewUser(c, inner)
}

// AssigneeID implements Assignee.
func (u *User) AssigneeID() int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

func (u *User) String() string {
	return fmt.Sprintf("<%s.User[%d] '%s'>", Library, u.ID, u.Username)
}
