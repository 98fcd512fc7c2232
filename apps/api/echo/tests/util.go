package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/mocnepiwko/uni-diary/apps/api/echo"
	"github.com/mocnepiwko/uni-diary/apps/shared"
	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/bot"
	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/reminder"
	"github.com/mocnepiwko/uni-diary/core/user"
	"github.com/mocnepiwko/uni-diary/storage/database/inmem"
	"github.com/mocnepiwko/uni-diary/tests"
)

const (
	testSecret = "r3m1nd-me"
	testPwd    = "Sup3rS3cret!"
)

var (
	// a Monday, 08:49 UTC
	testNow = time.Date(2025, time.March, 3, 8, 49, 0, 0, time.UTC)

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

type testApp struct {
	conf     *core.Config
	server   Server
	auth     *Auth
	usrRepo  user.Repository
	lsnRepo  lesson.Repository
	hwRepo   homework.Repository
	notifier *testutil.Notifier
	replier  *testutil.Replier
}

// setup builds the server over fresh in-memory repos. opts may adjust the config before the server is built.
func setup(t *testing.T, opts ...func(*testApp)) *testApp {
	conf, err := core.LoadConfig("TEST", t.TempDir())
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	conf.ReminderSecret = testSecret
	conf.Server.DisableReqLogs = true

	logger := testutil.NopLogger{}
	validate, translator := shared.NewValidator()
	clock := testutil.FixedClock(testNow, time.Hour)

	// set up DB & repos
	db := inmemdb.Open()
	app := &testApp{
		conf:     conf,
		usrRepo:  inmemdb.NewUserRepository(db),
		lsnRepo:  inmemdb.NewLessonRepository(db),
		hwRepo:   inmemdb.NewHomeworkRepository(db),
		notifier: new(testutil.Notifier),
		replier:  new(testutil.Replier),
	}

	for _, opt := range opts {
		opt(app)
	}

	// set up services
	usrSvc := user.NewService(app.usrRepo, validate)
	lsnSvc := lesson.NewService(app.lsnRepo, app.notifier, validate, logger)
	hwSvc := homework.NewService(app.hwRepo, app.notifier, validate, logger)

	// set up server
	app.server = NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		Validate:    validate,
		Translator:  translator,
		UserSvc:     usrSvc,
		LessonSvc:   lsnSvc,
		HomeworkSvc: hwSvc,
		Reminder:    reminder.NewChecker(lsnSvc, app.notifier, clock, conf.Schedule.Lookahead, logger),
		Responder:   bot.NewResponder(lsnSvc, app.replier, clock, logger),
	})
	app.auth = NewAuth(conf)
	return app
}

func (app *testApp) createUser(t *testing.T, name, email, role string) user.User {
	return testutil.CreateUser(t, app.usrRepo, name, email, testPwd, role)
}

func (app *testApp) getToken(t *testing.T, usr user.User) string {
	token, err := app.auth.GenerateToken(app.auth.UserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func (app *testApp) serve(req *http.Request, rec *httptest.ResponseRecorder) {
	app.server.ServeHTTP(rec, req)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

// checkCodeAndData compares the response to the expected code & JSON, order included.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

func runHTTPTests(t *testing.T, app *testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			app.serve(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func ctxBg() context.Context {
	return context.Background()
}

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
