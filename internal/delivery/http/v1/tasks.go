package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

type taskResponse struct {
	Task *models.Task `json:"task"`
}

type listTasksResponse struct {
	Tasks []*models.Task `json:"tasks"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c)
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, listTasksResponse{Tasks: tasks})
}

type createTaskRequest struct {
	Title *string `json:"title"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := bindOptionalJSON(c, &req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Title: req.Title,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskTitleRequired):
			abort(c, newBadRequestError(msgTaskTitleRequired))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, taskResponse{Task: task})
}

type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		abort(c, newNotFoundError(msgTaskNotFound))
		return
	}

	var req updateTaskRequest
	err := bindOptionalJSON(c, &req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID: taskID,
		Patch: models.TaskPatch{
			Title:     req.Title,
			Completed: req.Completed,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(msgTaskNotFound))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		abort(c, newNotFoundError(msgTaskNotFound))
		return
	}

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgTaskDeleted})
}

func (h *handlerImpl) HandleGetStats(c *gin.Context) {
	stats, err := h.tasks.GetStats(c)
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, stats)
}

// parseTaskID accepts only non-negative integer ids.
func parseTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// bindOptionalJSON binds the request body into obj. An empty body
// leaves obj untouched and is not an error.
func bindOptionalJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
