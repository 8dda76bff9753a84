package clickup

import (
	"context"
	"fmt"
	"net/http"
)

// Space is a ClickUp space inside a team.
type Space struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Private  bool      `json:"private"`
	Statuses []*Status `json:"statuses"`

	Team *Team `json:"-"`

	Attrs  Object `json:"-"`
	client *Client

	projects        []*Project
	projectsFetched bool
}

// NewSpace builds a Space belonging to team, which may be nil.
func NewSpace(c *Client, data map[string]interface{}, team *Team) *Space {
	var extras map[string]interface{}
	if team != nil {
		extras = map[string]interface{}{"team": team.ID}
	}
	attrs := NewObject(data, extras)
	s := &Space{
		ID:      attrs.String("id"),
		Name:    attrs.String("name"),
		Private: attrs.Bool("private"),
		Team:    team,
		Attrs:   attrs,
		client:  c,
	}

	statuses := asMaps(attrs.Slice("statuses"))
	s.Statuses = make([]*Status, 0, len(statuses))
	for _, st := range statuses {
		status := NewStatus(c, st)
		status.Space = s
		status.Attrs["space"] = s.ID
		s.Statuses = append(s.Statuses, status)
	}

	return s
}

func (s *Space) String() string {
	return fmt.Sprintf("<%s.Space[%s] '%s'>", Library, s.ID, s.Name)
}

// Projects returns the space's projects, fetching them on first use. With
// caching disabled on the client every call refetches.
func (s *Space) Projects(ctx context.Context) ([]*Project, error) {
	if s.client == nil {
		return nil, newMissingClientError("space " + s.ID)
	}
	if s.projectsFetched && s.client.CacheEnabled() {
		return s.projects, nil
	}
	return s.RefreshProjects(ctx)
}

// RefreshProjects refetches the space's projects.
func (s *Space) RefreshProjects(ctx context.Context) ([]*Project, error) {
	if s.client == nil {
		return nil, newMissingClientError("space " + s.ID)
	}
	data, ok, err := s.client.getObject(ctx, "space/"+s.ID+"/project", APIv1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while looking up projects", nil)
	}

	raw := asMaps(Object(data).Slice("projects"))
	projects := make([]*Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, NewProject(s.client, p, s))
	}

	s.projects = projects
	s.projectsFetched = true
	return projects, nil
}

// GetProject returns the project with the given id by scanning Projects.
func (s *Space) GetProject(ctx context.Context, id string) (*Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, newLookupError(fmt.Sprintf("project %s not found in space %s", id, s.ID))
}

// GetTasks fetches one page of the space's tasks.
func (s *Space) GetTasks(ctx context.Context, opts ...TaskQueryOption) ([]*Task, error) {
	teamID, err := s.teamID()
	if err != nil {
		return nil, err
	}
	return s.client.GetTasks(ctx, teamID, appendOption(opts, WithSpaceIDs(s.ID))...)
}

// GetAllTasks fetches every page of the space's tasks, up to pageLimit pages.
func (s *Space) GetAllTasks(ctx context.Context, pageLimit int, opts ...TaskQueryOption) ([]*Task, error) {
	teamID, err := s.teamID()
	if err != nil {
		return nil, err
	}
	return s.client.GetAllTasks(ctx, teamID, pageLimit, appendOption(opts, WithSpaceIDs(s.ID))...)
}

func (s *Space) teamID() (string, error) {
	if s.client == nil {
		return "", newMissingClientError("space " + s.ID)
	}
	if s.Team == nil {
		return "", newMissingParentError("space " + s.ID + " has no team")
	}
	return s.Team.ID, nil
}
