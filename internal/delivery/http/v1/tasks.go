package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BlockyAit/personal-list-site/internal/services"
)

type createTaskForm struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	identity := identityFromContext(c)
	session := sessionFromContext(c)

	sortOrder := c.Query("sort")
	if sortOrder == "" {
		sortOrder = services.SortDesc
	}

	tasks, err := h.tasks.ListTasks(c, identity, services.ListTasksParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Sort:   sortOrder,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":      identity,
		"Tasks":     tasks,
		"CSRFToken": session.CSRFToken,
		"SortOrder": sortOrder,
	})
}

func (h *handlerImpl) HandleAdminTasks(c *gin.Context) {
	identity := identityFromContext(c)
	session := sessionFromContext(c)

	tasks, err := h.tasks.ListTasks(c, identity, services.ListTasksParams{})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list all tasks")
		renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Tasks":     tasks,
		"CSRFToken": session.CSRFToken,
	})
}

func (h *handlerImpl) HandleNewTaskPage(c *gin.Context) {
	session := sessionFromContext(c)
	c.HTML(http.StatusOK, "new-task.html", gin.H{
		"CSRFToken": session.CSRFToken,
	})
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	identity := identityFromContext(c)
	session := sessionFromContext(c)

	var form createTaskForm
	err := c.ShouldBind(&form)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind task form")
		c.HTML(http.StatusOK, "new-task.html", gin.H{
			"CSRFToken": session.CSRFToken,
			"Errors":    formatValidationErrors(err),
		})
		return
	}

	_, err = h.tasks.CreateTask(c, identity, services.CreateTaskParams{
		Title:       form.Title,
		Description: form.Description,
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskTitleRequired) {
			c.HTML(http.StatusOK, "new-task.html", gin.H{
				"CSRFToken": session.CSRFToken,
				"Errors":    []string{"title is required"},
			})
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		renderServerError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	taskID := c.Param("id")

	err := h.tasks.CompleteTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to complete task")
		renderServerError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
