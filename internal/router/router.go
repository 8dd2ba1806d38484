package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/taskify/backend/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/", handlers.Health.Root)
	r.GET("/health", handlers.Health.Check)

	// Task routes. Static segments (search, filter) are registered beside the
	// {id} wildcard; the router prefers the static match.
	r.POST("/api/v1/tasks", handlers.Task.CreateTask)
	r.GET("/api/v1/tasks", handlers.Task.GetTasks)
	r.GET("/api/v1/tasks/search", handlers.Task.SearchTasks)
	r.GET("/api/v1/tasks/filter/{status}", handlers.Task.FilterTasks)
	r.GET("/api/v1/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/api/v1/tasks/{id}", handlers.Task.UpdateTask)
	r.PATCH("/api/v1/tasks/{id}/status", handlers.Task.UpdateTaskStatus)
	r.DELETE("/api/v1/tasks/{id}", handlers.Task.DeleteTask)

	return r
}
