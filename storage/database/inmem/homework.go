package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mocnepiwko/uni-diary/core/homework"
)

type homeworkRepository struct {
	db *homeworkTable
}

var _ homework.Repository = (*homeworkRepository)(nil)

func NewHomeworkRepository(db *DB) homework.Repository {
	return &homeworkRepository{db: db.homework}
}

func (repo *homeworkRepository) CreateHomework(_ context.Context, hw homework.Homework) (homework.Homework, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	hw.ID = uuid.New().String()
	repo.db.table[hw.ID] = &hw
	return hw, nil
}

func (repo *homeworkRepository) QueryHomeworks(_ context.Context, filter homework.QueryFilter) ([]homework.Homework, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	hws := make([]homework.Homework, 0)
	for _, hw := range repo.db.table {
		if filter.Subject != "" && hw.Subject != filter.Subject {
			continue
		}
		hws = append(hws, *hw)
	}
	sort.Slice(hws, func(i, j int) bool {
		if !hws[i].Deadline.Equal(hws[j].Deadline) {
			return hws[i].Deadline.Before(hws[j].Deadline)
		}
		return hws[i].CreatedAt.Before(hws[j].CreatedAt)
	})
	return hws, nil
}

func (repo *homeworkRepository) DeleteHomework(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.table, id)
	return nil
}
