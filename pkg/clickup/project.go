package clickup

import (
	"context"
	"fmt"
	"net/http"
)

// Project is a ClickUp project (a folder of lists inside a space).
type Project struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OverrideStatuses bool   `json:"override_statuses"`

	// Statuses is the project's own list when OverrideStatuses is set and
	// DefaultStatuses otherwise, never a mix of both.
	Statuses []*Status `json:"statuses"`
	Lists    []*List   `json:"lists"`

	Space *Space `json:"-"`

	Attrs  Object `json:"-"`
	client *Client
}

// NewProject builds a Project belonging to space, which may be nil.
func NewProject(c *Client, data map[string]interface{}, space *Space) *Project {
	var extras map[string]interface{}
	if space != nil {
		extras = map[string]interface{}{"space": space.ID}
	}
	attrs := NewObject(data, extras)
	p := &Project{
		ID:               attrs.String("id"),
		Name:             attrs.String("name"),
		OverrideStatuses: attrs.Bool("override_statuses"),
		Space:            space,
		Attrs:            attrs,
		client:           c,
	}

	statuses := DefaultStatuses()
	if p.OverrideStatuses {
		statuses = asMaps(attrs.Slice("statuses"))
	}
	p.Statuses = make([]*Status, 0, len(statuses))
	for _, s := range statuses {
		status := NewStatus(c, s)
		status.Project = p
		status.Attrs["project"] = p.ID
		p.Statuses = append(p.Statuses, status)
	}

	lists := asMaps(attrs.Slice("lists"))
	p.Lists = make([]*List, 0, len(lists))
	for _, l := range lists {
		p.Lists = append(p.Lists, NewList(c, l, p))
	}

	return p
}

func (p *Project) String() string {
	return fmt.Sprintf("<%s.Project[%s] '%s'>", Library, p.ID, p.Name)
}

// GetList returns the list with the given id from the lists already loaded
// with the project.
func (p *Project) GetList(id string) (*List, error) {
	for _, l := range p.Lists {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, newLookupError(fmt.Sprintf("list %s not found in project %s", id, p.ID))
}

// CreateList creates a list in this project. The project's Lists are not
// updated.
func (p *Project) CreateList(ctx context.Context, name string) (*List, error) {
	if p.client == nil {
		return nil, newMissingClientError("project " + p.ID)
	}
	out, err := p.client.Post(ctx, "project/"+p.ID+"/list", APIv1, map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	data, ok := out.(map[string]interface{})
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while creating list", nil)
	}
	return NewList(p.client, data, p), nil
}

// GetTasks fetches one page of the project's tasks.
func (p *Project) GetTasks(ctx context.Context, opts ...TaskQueryOption) ([]*Task, error) {
	teamID, err := p.teamID()
	if err != nil {
		return nil, err
	}
	return p.client.GetTasks(ctx, teamID, appendOption(opts, WithProjectIDs(p.ID))...)
}

// GetAllTasks fetches every page of the project's tasks, up to pageLimit pages.
func (p *Project) GetAllTasks(ctx context.Context, pageLimit int, opts ...TaskQueryOption) ([]*Task, error) {
	teamID, err := p.teamID()
	if err != nil {
		return nil, err
	}
	return p.client.GetAllTasks(ctx, teamID, pageLimit, appendOption(opts, WithProjectIDs(p.ID))...)
}

func (p *Project) teamID() (string, error) {
	if p.client == nil {
		return "", newMissingClientError("project " + p.ID)
	}
	if p.Space == nil {
		return "", newMissingParentError("project " + p.ID + " has no space")
	}
	return p.Space.teamID()
}
