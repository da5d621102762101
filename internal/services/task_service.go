package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/BlockyAit/personal-list-site/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, identity models.Identity, params CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	task := models.Task{
		UserID:      identity.ID,
		UserName:    identity.Name,
		Title:       params.Title,
		Description: params.Description,
		Status:      models.StatusPending,
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   user_name,
                   title,
                   description,
                   status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at
`
	err = s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.UserName,
		task.Title,
		task.Description,
		task.Status,
	).Scan(&task.CreatedAt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return &task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, identity models.Identity, params ListTasksParams) ([]models.Task, error) {
	query, args := buildListTasksQuery(identity, params)

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		err = rows.Scan(
			&task.ID,
			&task.UserID,
			&task.UserName,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", identity.ID).
		Msg("selected tasks")
	return tasks, nil
}

func (s *taskServiceImpl) CompleteTask(ctx context.Context, taskID string) error {
	const updateTaskStatusQuery = `
UPDATE tasks
SET status = $1
WHERE id = $2
`
	// The update is keyed by id alone and the affected row count is not
	// checked: completing an unknown task is a no-op and completing an
	// already completed one is an idempotent rewrite.
	_, err := s.pgPool.Exec(
		ctx,
		updateTaskStatusQuery,
		models.StatusCompleted,
		taskID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task status")
		return err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Msg("completed task")
	return nil
}

// buildListTasksQuery assembles the filtered, ordered task listing.
// Non-admin identities are always restricted to their own tasks; the
// owner display name comes from the users table when the owner still
// exists, falling back to the name denormalized at creation time.
func buildListTasksQuery(identity models.Identity, params ListTasksParams) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
SELECT t.id,
       t.user_id,
       COALESCE(u.name, t.user_name) AS user_name,
       t.title,
       t.description,
       t.status,
       t.created_at
FROM tasks t
         LEFT JOIN users u ON u.id = t.user_id
`)

	var (
		conditions []string
		args       []any
	)
	addCondition := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, strings.ReplaceAll(condition, "?", placeholder(len(args))))
	}

	if !identity.IsAdmin() {
		addCondition("t.user_id = ?", identity.ID)
	}
	if params.Status != "" {
		// Invalid status values are passed through untouched:
		// they match nothing and yield an empty list.
		addCondition("t.status = ?", params.Status)
	}
	if params.Search != "" {
		addCondition("t.title ILIKE '%' || ? || '%'", params.Search)
	}

	if len(conditions) > 0 {
		sb.WriteString("WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
		sb.WriteString("\n")
	}

	order := "DESC"
	if params.Sort == SortAsc {
		order = "ASC"
	}
	sb.WriteString("ORDER BY t.created_at ")
	sb.WriteString(order)
	sb.WriteString(", t.id\n")

	return sb.String(), args
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
