package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BlockyAit/personal-list-site/internal/services"
)

type Handler interface {
	HandleSessionMiddleware(c *gin.Context)
	HandleCSRFMiddleware(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleAdminMiddleware(c *gin.Context)

	HandleLoginPage(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleRegisterPage(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleAdminTasks(c *gin.Context)
	HandleNewTaskPage(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	tasks    services.TaskService
	sessions services.SessionStore
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	sessionStore services.SessionStore,
) Handler {
	return &handlerImpl{
		logger:   logger,
		auth:     authService,
		tasks:    taskService,
		sessions: sessionStore,
	}
}
