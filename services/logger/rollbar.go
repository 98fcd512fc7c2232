// Package logsvc implements core.Logger.
package logsvc

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/user"
)

// labels prefix the stdout lines, per rollbar level.
var labels = map[string]string{
	rollbar.DEBUG: "DEBUG",
	rollbar.INFO:  "INFO",
	rollbar.WARN:  "WARN",
	rollbar.ERR:   "ERROR",
	rollbar.CRIT:  "FATAL",
}

// RollbarLogger prints every entry to std and reports it to rollbar.
// Debug entries only reach std in debug mode.
type RollbarLogger struct {
	std       *log.Logger
	client    *rollbar.Client
	debug     bool
	closeOnce sync.Once
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	client := rollbar.New(conf.RollbarToken, conf.Env, conf.Build, conf.Server.Host, "")
	client.SetStackTracer(errors.StackTracer)
	// nothing to report to without a token
	client.SetEnabled(conf.RollbarToken != "" && !conf.Debug && !conf.TestMode)
	return &RollbarLogger{std: std, client: client, debug: conf.Debug}
}

// Close waits for the queued rollbar items to be sent. The client cannot be reused afterwards.
func (l *RollbarLogger) Close() {
	l.closeOnce.Do(func() { _ = l.client.Close() })
}

// log splits args into the session user, the error and the rollbar extras.
func (l *RollbarLogger) log(level, msg string, args []interface{}) {
	var (
		usr    *user.User
		err    error
		extras = map[string]interface{}{}
		rest   []interface{}
	)
	for _, arg := range args {
		switch a := arg.(type) {
		case user.User:
			if usr == nil && a.ID != "" {
				usr = &a
			}
			continue
		case error:
			if err == nil {
				err = a
			}
		case map[string]interface{}:
			for k, v := range a {
				extras[k] = v
			}
		}
		rest = append(rest, arg)
	}

	if usr != nil {
		l.client.SetPerson(usr.ID, usr.Name, usr.Email)
	} else {
		l.client.ClearPerson()
	}
	if err != nil {
		extras["message"] = msg
		l.client.ErrorWithExtras(level, err, extras)
	} else {
		l.client.MessageWithExtras(level, msg, extras)
	}

	if level == rollbar.DEBUG && !l.debug {
		return
	}
	line := labels[level] + ": " + msg
	if usr != nil {
		line += fmt.Sprintf(" [user %s]", usr.Email)
	}
	l.std.Println(line)
	for _, arg := range rest {
		if e, ok := arg.(error); ok && strings.Contains(msg, e.Error()) {
			continue // already part of msg
		}
		l.std.Printf("%+v\n", arg)
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.DEBUG, msg, args) }
func (l *RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.INFO, msg, args) }
func (l *RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.WARN, msg, args) }
func (l *RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.ERR, msg, args) }

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	l.Close()
	l.std.Fatal(msg)
}
