package domain

import "time"

// Fixture ids. They match the sample data of the public API documentation
// so tests and docs can share them.
const (
	FixtureUserID    int64 = 123
	FixtureTeamID          = "1234"
	FixtureSpaceID         = "12345"
	FixtureProjectID       = "1234"
	FixtureListID          = "1234"
	FixtureTaskID          = "av1"
	FixtureSubtaskID       = "9hz"
	FixtureCommentID       = "456"
)

// Dataset is a complete workspace.
type Dataset struct {
	Owner    User
	Teams    []Team
	Spaces   []Space
	Projects []Project
	Tasks    []Task
	Comments []Comment
}

// Fixture returns the sample workspace: one team with one member, one
// private space, one project with one list, a task with a subtask and one
// comment on the task.
func Fixture(now time.Time) Dataset {
	picture := "https://attachments.clickup.com/profilePictures/123_abc.jpg"
	owner := User{
		ID:             FixtureUserID,
		Username:       "John Doe",
		Email:          "john@example.com",
		Color:          "#000000",
		Initials:       "JD",
		ProfilePicture: &picture,
	}

	created := Millis(now.Add(-48 * time.Hour))
	updated := Millis(now.Add(-24 * time.Hour))
	due := Millis(now.Add(72 * time.Hour))
	parent := FixtureTaskID

	task := Task{
		ID:          FixtureTaskID,
		Name:        "My First Task",
		Content:     "Task content",
		Status:      DefaultStatuses()[0],
		Creator:     owner,
		Tags:        []Tag{{Name: "backend", Fg: "#800000", Bg: "#2ecd6f"}},
		Assignees:   []User{owner},
		Priority:    PriorityFor(3),
		DueDate:     &due,
		DateCreated: created,
		DateUpdated: updated,
		TeamID:      FixtureTeamID,
		List:        Ref{ID: FixtureListID},
		Project:     Ref{ID: FixtureProjectID},
		Space:       Ref{ID: FixtureSpaceID},
		URL:         "https://app.clickup.com/t/" + FixtureTaskID,
	}
	subtask := Task{
		ID:          FixtureSubtaskID,
		Name:        "My Second Task",
		Status:      DefaultStatuses()[2],
		Creator:     owner,
		Parent:      &parent,
		DateCreated: updated,
		DateUpdated: updated,
		TeamID:      FixtureTeamID,
		List:        Ref{ID: FixtureListID},
		Project:     Ref{ID: FixtureProjectID},
		Space:       Ref{ID: FixtureSpaceID},
		URL:         "https://app.clickup.com/t/" + FixtureSubtaskID,
	}

	return Dataset{
		Owner: owner,
		Teams: []Team{{
			ID:      FixtureTeamID,
			Name:    "My workspace",
			Color:   "#7b68ee",
			Members: []Member{{User: owner}},
		}},
		Spaces: []Space{{
			ID:      FixtureSpaceID,
			Name:    "My Space",
			Private: true,
			Statuses: []Status{
				{Status: "Open", Type: "open", OrderIndex: 0, Color: "#d3d3d3"},
				{Status: "Closed", Type: "closed", OrderIndex: 1, Color: "#6bc950"},
			},
			TeamID: FixtureTeamID,
		}},
		Projects: []Project{{
			ID:      FixtureProjectID,
			Name:    "My project",
			Lists:   []List{{ID: FixtureListID, Name: "My List"}},
			SpaceID: FixtureSpaceID,
		}},
		Tasks: []Task{task, subtask},
		Comments: []Comment{{
			ID:          FixtureCommentID,
			CommentText: "Looks good",
			User:        owner,
			Date:        updated,
			Target:      "task",
			TargetID:    FixtureTaskID,
		}},
	}
}
