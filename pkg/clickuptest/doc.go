// Package clickuptest runs an in-process fake of the ClickUp v1 and v2 APIs
// for tests.
//
// The fake serves a small sample workspace: user 123 "John Doe", team
// "1234", space "12345", project "1234" with list "1234", task "av1" with
// subtask "9hz", and comment "456" on the task. Tasks, lists and comments
// can be created, updated and deleted; changes live as long as the Server.
//
// # Basic Usage
//
//	func TestTasks(t *testing.T) {
//	    srv := clickuptest.Start(t)
//
//	    client, _ := clickup.NewClient(srv.Token(),
//	        clickup.WithAPIURL(srv.V1URL()),
//	        clickup.WithAPIV2URL(srv.V2URL()))
//
//	    tasks, err := client.GetAllTasks(ctx, "1234", clickup.NoPageLimit)
//	    ...
//	    req, _ := srv.LastRequest()
//	    if req.QueryString != "page=1&include_closed=false" { ... }
//	}
//
// # Failure Injection
//
// SetRateLimited and LimitAfter make the server answer 429, the way ClickUp
// does when a token exceeds its request budget.
package clickuptest
