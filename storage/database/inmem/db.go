// Package inmemdb keeps the repositories in memory, for tests & local development.
package inmemdb

import (
	"sync"

	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/user"
)

type (
	DB struct {
		user     *userTable
		lesson   *lessonTable
		homework *homeworkTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	lessonTable struct {
		table map[string]*lesson.Lesson
		mutex sync.RWMutex
	}

	homeworkTable struct {
		table map[string]*homework.Homework
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		lesson:   &lessonTable{table: make(map[string]*lesson.Lesson)},
		homework: &homeworkTable{table: make(map[string]*homework.Homework)},
	}
}
