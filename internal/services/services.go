package services

import (
	"context"
	"errors"

	"github.com/BlockyAit/personal-list-site/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrTaskTitleRequired    = errors.New("task title is required")
)

type AuthService interface {
	// Register creates a user with the given name, email and password.
	//
	// The password is hashed before it is stored; the role is always
	// models.RoleUser. It returns ErrUserAlreadyExists if a user with
	// the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login authenticates the user by email and password and returns
	// a signed identity assertion carrying {id, name, role}.
	//
	// It returns ErrUserNotFound if the user with the given email
	// doesn't exist or ErrUserPasswordMismatch if the given password
	// doesn't match the stored hash.
	Login(ctx context.Context, params LoginParams) (string, error)

	// IssueToken signs an assertion for the given identity.
	IssueToken(identity models.Identity) (string, error)

	// ParseToken verifies the given assertion and decodes the identity.
	// Expired, malformed and forged tokens all fail the same way.
	ParseToken(token string) (*models.Identity, error)
}

type TaskService interface {
	// CreateTask inserts a task owned by the given identity. The owner's
	// display name is denormalized onto the task at creation time and the
	// initial status is always models.StatusPending.
	//
	// It returns ErrTaskTitleRequired when the title is empty.
	CreateTask(ctx context.Context, identity models.Identity, params CreateTaskParams) (*models.Task, error)

	// ListTasks returns the tasks visible to the given identity, filtered
	// and ordered by params. Non-admin identities only ever see their own
	// tasks regardless of the filters supplied.
	ListTasks(ctx context.Context, identity models.Identity, params ListTasksParams) ([]models.Task, error)

	// CompleteTask sets the task status to models.StatusCompleted.
	// An unknown id is a silent no-op.
	CompleteTask(ctx context.Context, taskID string) error
}

// SessionStore keeps server-side session records keyed by session id.
type SessionStore interface {
	// Create mints an anonymous session with a fresh anti-forgery token.
	Create(ctx context.Context) (*models.Session, error)

	// Get returns the session with the given id or ErrSessionNotFound
	// if it doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*models.Session, error)

	// SetToken binds a signed identity assertion into the session.
	SetToken(ctx context.Context, sessionID, token string) error

	// Delete destroys the whole session record.
	Delete(ctx context.Context, sessionID string) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type CreateTaskParams struct {
	Title       string
	Description string
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type ListTasksParams struct {
	Status string
	Search string
	Sort   string
}
