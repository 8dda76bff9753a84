package clickup

import (
	"context"
	"fmt"
	"net/http"
)

// Team is a ClickUp team (workspace).
type Team struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Color   string  `json:"color,omitempty"`
	Avatar  string  `json:"avatar,omitempty"`
	Members []*User `json:"members"`

	Attrs  Object `json:"-"`
	client *Client

	spaces        []*Space
	spacesFetched bool
}

// NewTeam builds a Team. Members arrive wrapped as {"user": {...}}.
func NewTeam(c *Client, data map[string]interface{}) *Team {
	attrs := NewObject(data, nil)
	t := &Team{
		ID:     attrs.String("id"),
		Name:   attrs.String("name"),
		Color:  attrs.String("color"),
		Avatar: attrs.String("avatar"),
		Attrs:  attrs,
		client: c,
	}

	members := asMaps(attrs.Slice("members"))
	t.Members = make([]*User, 0, len(members))
	for _, m := range members {
		u := NewUserFromEnvelope(c, m)
		u.Team = t
		t.Members = append(t.Members, u)
	}

	return t
}

func (t *Team) String() string {
	return fmt.Sprintf("<%s.Team[%s] '%s'>", Library, t.ID, t.Name)
}

// Spaces returns the team's spaces, fetching them on first use. With caching
// disabled on the client every call refetches.
func (t *Team) Spaces(ctx context.Context) ([]*Space, error) {
	if t.client == nil {
		return nil, newMissingClientError("team " + t.ID)
	}
	if t.spacesFetched && t.client.CacheEnabled() {
		return t.spaces, nil
	}
	return t.RefreshSpaces(ctx)
}

// RefreshSpaces refetches the team's spaces.
func (t *Team) RefreshSpaces(ctx context.Context) ([]*Space, error) {
	if t.client == nil {
		return nil, newMissingClientError("team " + t.ID)
	}
	data, ok, err := t.client.getObject(ctx, "team/"+t.ID+"/space", APIv1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while looking up spaces", nil)
	}

	raw := asMaps(Object(data).Slice("spaces"))
	spaces := make([]*Space, 0, len(raw))
	for _, s := range raw {
		spaces = append(spaces, NewSpace(t.client, s, t))
	}

	t.spaces = spaces
	t.spacesFetched = true
	return spaces, nil
}

// GetSpace returns the space with the given id by scanning Spaces.
func (t *Team) GetSpace(ctx context.Context, id string) (*Space, error) {
	spaces, err := t.Spaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range spaces {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, newLookupError(fmt.Sprintf("space %s not found in team %s", id, t.ID))
}

// GetTasks fetches one page of the team's tasks.
func (t *Team) GetTasks(ctx context.Context, opts ...TaskQueryOption) ([]*Task, error) {
	if t.client == nil {
		return nil, newMissingClientError("team " + t.ID)
	}
	return t.client.GetTasks(ctx, t.ID, opts...)
}

// GetAllTasks fetches every page of the team's tasks, up to pageLimit pages.
func (t *Team) GetAllTasks(ctx context.Context, pageLimit int, opts ...TaskQueryOption) ([]*Task, error) {
	if t.client == nil {
		return nil, newMissingClientError("team " + t.ID)
	}
	return t.client.GetAllTasks(ctx, t.ID, pageLimit, opts...)
}
