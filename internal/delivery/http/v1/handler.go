package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/services"
)

type Handler interface {
	HandleIndex(c *gin.Context)
	HandleHealth(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleGetStats(c *gin.Context)

	HandleRequestIDMiddleware(c *gin.Context)
	HandleAccessLogMiddleware(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
	}
}

// RegisterRoutes mounts the JSON API and the health check on router.
// The landing page is mounted separately because it needs templates.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/healthz", h.HandleHealth)

	api := router.Group("/api")
	api.GET("/tasks", h.HandleGetTasks)
	api.POST("/tasks", h.HandleCreateTask)
	api.PUT("/tasks/:id", h.HandleUpdateTask)
	api.DELETE("/tasks/:id", h.HandleDeleteTask)
	api.GET("/stats", h.HandleGetStats)
}
