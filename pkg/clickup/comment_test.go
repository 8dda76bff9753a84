package clickup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func commentFixture() map[string]interface{} {
	return map[string]interface{}{
		"id":           "456",
		"comment_text": "Looks good",
		"user":         map[string]interface{}{"id": 123, "username": "John Doe"},
		"resolved":     false,
		"assignee":     nil,
		"date":         "1508369194377",
	}
}

func TestGetComments(t *testing.T) {
	tests := []struct {
		name string
		list func(c *Client) ([]*Comment, error)
		path string
	}{
		{
			name: "task",
			list: func(c *Client) ([]*Comment, error) {
				return NewTask(c, map[string]interface{}{"id": "av1"}).Comments(context.Background())
			},
			path: "/api/v2/task/av1/comment",
		},
		{
			name: "list",
			list: func(c *Client) ([]*Comment, error) {
				return NewList(c, map[string]interface{}{"id": "1234"}, nil).Comments(context.Background())
			},
			path: "/api/v2/list/1234/comment",
		},
		{
			name: "view",
			list: func(c *Client) ([]*Comment, error) {
				return c.GetComments(context.Background(), CommentOnView, "v1")
			},
			path: "/api/v2/view/v1/comment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Errorf("expected path %s, got %s", tt.path, r.URL.Path)
				}
				writeJSON(w, http.StatusOK, map[string]interface{}{
					"comments": []interface{}{commentFixture()},
				})
			}))
			defer server.Close()

			comments, err := tt.list(newTestClient(t, server))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(comments) != 1 {
				t.Fatalf("expected 1 comment, got %d", len(comments))
			}
			c := comments[0]
			if c.ID != "456" || c.Text != "Looks good" {
				t.Errorf("unexpected comment %s", c)
			}
			if c.User == nil || c.User.ID != 123 {
				t.Errorf("expected author 123, got %v", c.User)
			}
			if c.Assignee != nil {
				t.Errorf("expected no assignee, got %v", c.Assignee)
			}
			if c.Date == nil || c.Date.Unix() != 1508369194 {
				t.Errorf("expected date 1508369194, got %v", c.Date)
			}
		})
	}
}

func TestGetCommentsInvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []interface{}{})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetComments(context.Background(), CommentOnTask, "av1")
	if !IsRemoteError(err) {
		t.Errorf("expected remote error, got %v", err)
	}
}

func TestCommentInvalidTarget(t *testing.T) {
	client, err := NewClient("pk_test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.GetComments(context.Background(), CommentTarget("folder"), "1"); !IsInvalidArgument(err) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
	if _, err := client.CreateComment(context.Background(), CommentTarget("folder"), "1", "hi", nil); !IsInvalidArgument(err) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
}

func TestAddComment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v2/task/av1/comment" {
			t.Errorf("expected path /api/v2/task/av1/comment, got %s", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body["content"] != "Looks good" {
			t.Errorf("expected content Looks good, got %v", body["content"])
		}
		if body["assignee"] != float64(123) {
			t.Errorf("expected assignee 123, got %v", body["assignee"])
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "456", "date": 1508369194377})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	task := NewTask(client, map[string]interface{}{"id": "av1"})
	comment, err := task.AddComment(context.Background(), "Looks good", UserID(123))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.ID != "456" {
		t.Errorf("expected id 456, got %s", comment.ID)
	}
	if comment.Text != "Looks good" {
		t.Errorf("expected text to be filled from the request, got %q", comment.Text)
	}
}

func TestCommentUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/api/v2/comment/456" {
			t.Errorf("expected path /api/v2/comment/456, got %s", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body["comment_text"] != "Updated" {
			t.Errorf("expected comment_text Updated, got %v", body["comment_text"])
		}
		if body["resolved"] != true {
			t.Errorf("expected resolved true, got %v", body["resolved"])
		}
		if body["assignee"] != float64(123) {
			t.Errorf("expected assignee 123, got %v", body["assignee"])
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	comment := NewComment(client, commentFixture())
	user := &User{ID: 123, Username: "John Doe"}

	if err := comment.Update(context.Background(), "Updated", user, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.Text != "Updated" || !comment.Resolved {
		t.Errorf("expected local copy to be updated, got %q resolved=%v", comment.Text, comment.Resolved)
	}
	if comment.Assignee != user {
		t.Errorf("expected assignee to be set, got %v", comment.Assignee)
	}
}

func TestCommentUpdateAssigneeForms(t *testing.T) {
	var nilUser *User
	tests := []struct {
		name     string
		assignee Assignee
		wantBody interface{}
		wantID   int64
		wantNil  bool
	}{
		{name: "bare user id", assignee: UserID(7), wantBody: float64(7), wantID: 7},
		{name: "nil clears", assignee: nil, wantBody: nil, wantNil: true},
		{name: "nil user clears", assignee: nilUser, wantBody: nil, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]interface{}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode request body: %v", err)
				}
				if body["assignee"] != tt.wantBody {
					t.Errorf("expected assignee %v, got %v", tt.wantBody, body["assignee"])
				}
				writeJSON(w, http.StatusOK, map[string]interface{}{})
			}))
			defer server.Close()

			client := newTestClient(t, server)
			comment := NewComment(client, commentFixture())
			comment.Assignee = &User{ID: 123, Username: "John Doe"}

			if err := comment.Update(context.Background(), "Updated", tt.assignee, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if comment.Assignee != nil {
					t.Errorf("expected assignee to be cleared, got %v", comment.Assignee)
				}
				return
			}
			if comment.Assignee == nil || comment.Assignee.ID != tt.wantID {
				t.Errorf("expected assignee %d, got %v", tt.wantID, comment.Assignee)
			}
		})
	}
}

func TestDeleteComment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/comment/456" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if !NewComment(client, commentFixture()).Delete(context.Background()) {
		t.Error("expected delete to succeed")
	}
	if client.DeleteComment(context.Background(), "999") {
		t.Error("expected delete of unknown comment to fail")
	}
}
