package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taskify/backend/domain"
)

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var status string

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, storeErr(err)
	}

	task.Status = domain.Status(status)
	return &task, nil
}

// storeErr maps driver errors to the domain taxonomy: a missing row is a
// not-found condition, anything else means the store is unreachable or
// misbehaving and surfaces as UNAVAILABLE.
func storeErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrTaskNotFound
	}
	return domain.WrapError(domain.ErrCodeUnavailable, "task store unavailable", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so the search query is always a
// literal substring match.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}
