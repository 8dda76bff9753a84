package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goclickup/goclickup/internal/api/handler"
	"github.com/goclickup/goclickup/internal/api/middleware"
	"github.com/goclickup/goclickup/internal/api/response"
	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/internal/store"
)

// Options configures the router.
type Options struct {
	// Token is the only accepted Authorization value. Empty accepts any
	// non-empty token.
	Token string
	// Logger receives request logs. Nil discards them.
	Logger *slog.Logger
	// PageSize is the number of tasks per page; <= 0 uses
	// store.DefaultPageSize.
	PageSize int
	// Compress enables gzip/deflate response encoding.
	Compress bool
	// Recorder, when set, keeps every request.
	Recorder *middleware.Recorder
	// Limiter, when set, can answer 429 on demand.
	Limiter *middleware.RateLimiter
}

// NewRouter creates and configures the HTTP router serving ws under
// /api/v1 and /api/v2.
func NewRouter(ws *store.Workspace, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	if opts.Recorder != nil {
		r.Use(opts.Recorder.Middleware)
	}
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	if opts.Compress {
		r.Use(chimiddleware.Compress(5, "application/json"))
	}
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}
	r.Use(middleware.Auth(opts.Token))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, domain.NewRouteNotFoundError(r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, domain.NewRouteNotFoundError(r.Method, r.URL.Path))
	})

	// Initialize handlers
	hierarchyHandler := handler.NewHierarchyHandler(ws)
	taskHandler := handler.NewTaskHandler(ws, opts.PageSize)
	commentHandler := handler.NewCommentHandler(ws)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/user", hierarchyHandler.GetUser)
		r.Get("/team", hierarchyHandler.ListTeams)
		r.Get("/team/{id}", hierarchyHandler.GetTeam)
		r.Get("/team/{id}/space", hierarchyHandler.ListSpaces)
		r.Get("/team/{id}/task", taskHandler.ListTasks)
		r.Get("/space/{id}/project", hierarchyHandler.ListProjects)
		r.Post("/project/{id}/list", hierarchyHandler.CreateList)
		r.Put("/list/{id}", hierarchyHandler.RenameList)
		r.Post("/list/{id}/task", taskHandler.CreateTask)
		r.Put("/task/{id}", taskHandler.UpdateTask)
	})

	r.Route("/api/v2", func(r chi.Router) {
		r.Get("/task/{id}", taskHandler.GetTask)
		r.Delete("/task/{id}", taskHandler.DeleteTask)
		r.Get("/task/{id}/member", taskHandler.ListMembers)

		for _, kind := range domain.CommentTargets {
			r.Get("/"+kind+"/{id}/comment", commentHandler.ListComments(kind))
			r.Post("/"+kind+"/{id}/comment", commentHandler.CreateComment(kind))
		}
		r.Put("/comment/{id}", commentHandler.UpdateComment)
		r.Delete("/comment/{id}", commentHandler.DeleteComment)
	})

	return r
}
