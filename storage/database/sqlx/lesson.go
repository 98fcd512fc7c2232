package sqlxrepos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mocnepiwko/uni-diary/core/lesson"
)

const lessonColumns = `id, title, teacher, room, type, day, start_time, end_time, is_custom, created_at, updated_at`

type lessonRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Teacher   string    `db:"teacher"`
	Room      string    `db:"room"`
	Type      string    `db:"type"`
	Day       string    `db:"day"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	IsCustom  bool      `db:"is_custom"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r lessonRow) toLesson() lesson.Lesson {
	l := lesson.Lesson(r)
	l.CreatedAt = r.CreatedAt.UTC()
	l.UpdatedAt = r.UpdatedAt.UTC()
	return l
}

type lessonRepository struct {
	db *sqlx.DB
}

var _ lesson.Repository = (*lessonRepository)(nil)

func NewLessonRepository(db *sqlx.DB) lesson.Repository {
	return &lessonRepository{db: db}
}

func (repo *lessonRepository) CreateLesson(ctx context.Context, l lesson.Lesson) (lesson.Lesson, error) {
	l.ID = uuid.New().String()
	q := `INSERT INTO lessons (` + lessonColumns + `)
		VALUES (:id, :title, :teacher, :room, :type, :day, :start_time, :end_time, :is_custom, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, lessonRow(l)); err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	return l, nil
}

func (repo *lessonRepository) QueryLessons(ctx context.Context, filter lesson.QueryFilter) ([]lesson.Lesson, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Day != "" {
		args = append(args, filter.Day)
		conds = append(conds, fmt.Sprintf("day = $%d", len(args)))
	}
	if filter.StartTime != "" {
		args = append(args, filter.StartTime)
		conds = append(conds, fmt.Sprintf("start_time = $%d", len(args)))
	}

	q := `SELECT ` + lessonColumns + ` FROM lessons`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY start_time, created_at`

	var rows []lessonRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting lessons")
	}
	lessons := make([]lesson.Lesson, 0, len(rows))
	for _, r := range rows {
		lessons = append(lessons, r.toLesson())
	}
	return lessons, nil
}

func (repo *lessonRepository) DeleteLesson(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return nil
}
