package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mocnepiwko/uni-diary/core/homework"
)

const homeworkColumns = `id, subject, description, deadline, created_by, created_at, updated_at`

type homeworkRow struct {
	ID          string    `db:"id"`
	Subject     string    `db:"subject"`
	Description string    `db:"description"`
	Deadline    time.Time `db:"deadline"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r homeworkRow) toHomework() homework.Homework {
	return homework.Homework{
		ID:          r.ID,
		Subject:     r.Subject,
		Description: r.Description,
		Deadline:    r.Deadline.UTC(),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type homeworkRepository struct {
	db *sqlx.DB
}

var _ homework.Repository = (*homeworkRepository)(nil)

func NewHomeworkRepository(db *sqlx.DB) homework.Repository {
	return &homeworkRepository{db: db}
}

func (repo *homeworkRepository) CreateHomework(ctx context.Context, hw homework.Homework) (homework.Homework, error) {
	hw.ID = uuid.New().String()
	q := `INSERT INTO homeworks (` + homeworkColumns + `)
		VALUES (:id, :subject, :description, :deadline, :created_by, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, homeworkRow(hw)); err != nil {
		return homework.Homework{}, errors.Wrap(err, "inserting homework")
	}
	return hw, nil
}

func (repo *homeworkRepository) QueryHomeworks(ctx context.Context, filter homework.QueryFilter) ([]homework.Homework, error) {
	q := `SELECT ` + homeworkColumns + ` FROM homeworks`
	var args []interface{}
	if filter.Subject != "" {
		q += ` WHERE subject = $1`
		args = append(args, filter.Subject)
	}
	q += ` ORDER BY deadline, created_at`

	var rows []homeworkRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting homeworks")
	}
	hws := make([]homework.Homework, 0, len(rows))
	for _, r := range rows {
		hws = append(hws, r.toHomework())
	}
	return hws, nil
}

func (repo *homeworkRepository) DeleteHomework(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM homeworks WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return nil
}
