// Package clickup provides a Go client for the ClickUp project management API.
//
// Responses are mapped into typed models that mirror the API's hierarchy:
// teams contain spaces, spaces contain projects, projects contain lists and
// lists contain tasks. Every model keeps the full response object, with keys
// normalized to snake_case, in its Attrs field. Models built under a parent
// also carry the parent's id in Attrs under "team", "space" or "project".
//
// # Getting Started
//
// Create a client with a personal API token:
//
//	client, err := clickup.NewClient("pk_123")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Navigating Resources
//
//	teams, err := client.Teams(ctx)
//	spaces, err := teams[0].Spaces(ctx)
//	projects, err := spaces[0].Projects(ctx)
//	list, err := projects[0].GetList("1234")
//
// Teams, spaces and projects are fetched once and reused. Use the Refresh
// methods, or WithCache(false), to fetch again.
//
// # Tasks
//
// Fetch a single page, or every page:
//
//	tasks, err := team.GetTasks(ctx, clickup.WithReverse(true))
//	all, err := list.GetAllTasks(ctx, clickup.NoPageLimit,
//	    clickup.WithIncludeClosed(true),
//	)
//
// Create and update tasks:
//
//	task, err := list.CreateTask(ctx, "Write docs",
//	    clickup.WithPriority(clickup.PriorityHigh),
//	    clickup.WithAssignees(user),
//	)
//	err = task.Update(ctx, clickup.WithUpdateStatus("in progress"))
//
// # Comments
//
//	comment, err := task.AddComment(ctx, "Looks good", nil)
//	comments, err := list.Comments(ctx)
//
// # Error Handling
//
//	teams, err := client.Teams(ctx)
//	if err != nil {
//	    if clickup.IsRateLimited(err) {
//	        // back off and retry
//	    } else if clickup.IsRemoteError(err) {
//	        // the API rejected the request
//	    }
//	}
//
// # Configuration Options
//
// Client options:
//
//	clickup.WithAPIURL(url)          // v1 base URL (default: https://api.clickup.com/api/v1/)
//	clickup.WithAPIV2URL(url)        // v2 base URL (default: https://api.clickup.com/api/v2/)
//	clickup.WithCache(enabled)       // Memoize teams, spaces and projects (default: true)
//	clickup.WithDebug(enabled)       // Log requests to stdout (default: false)
//	clickup.WithUserAgent(ua)        // User-Agent header (default: goclickup/<version>)
//	clickup.WithLogger(logger)       // slog logger for debug output
//	clickup.WithHTTPClient(client)   // Custom *http.Client
//	clickup.WithTimeout(duration)    // HTTP timeout (default: none)
package clickup
