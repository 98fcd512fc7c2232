// Package testutil provides fakes & fixtures shared by the package tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/user"
)

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

// Notifier records the sent messages.
type Notifier struct {
	mu       sync.Mutex
	messages []string
}

var _ core.Notifier = (*Notifier)(nil)

func (n *Notifier) Send(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
}

func (n *Notifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type Reply struct {
	ChatID int64
	Text   string
}

// Replier records the sent replies.
type Replier struct {
	mu      sync.Mutex
	replies []Reply
}

var _ core.Replier = (*Replier)(nil)

func (r *Replier) Reply(_ context.Context, chatID int64, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, Reply{ChatID: chatID, Text: text})
}

func (r *Replier) Replies() []Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Reply(nil), r.replies...)
}

// FixedClock returns a legacy offset Clock whose Now is always now.
func FixedClock(now time.Time, offset time.Duration) core.Clock {
	return core.Clock{
		Offset: offset,
		Now:    func() time.Time { return now },
	}
}

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd, role string, createdAt ...time.Time) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func CreateLesson(t *testing.T, repo lesson.Repository, title, day, start, end string) lesson.Lesson {
	now := time.Now().UTC()
	l, err := repo.CreateLesson(context.Background(), lesson.Lesson{
		Title:     title,
		Teacher:   "Иванов И.И.",
		Room:      "301",
		Type:      lesson.TypeLecture,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createLesson() failed: %v", err)
	}
	return l
}

func CreateHomework(t *testing.T, repo homework.Repository, subject, description string, deadline time.Time) homework.Homework {
	now := time.Now().UTC()
	hw, err := repo.CreateHomework(context.Background(), homework.Homework{
		Subject:     subject,
		Description: description,
		Deadline:    deadline.UTC(),
		CreatedBy:   "Петров П.П.",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("createHomework() failed: %v", err)
	}
	return hw
}
