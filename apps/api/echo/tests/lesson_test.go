package tests

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/user"
	"github.com/mocnepiwko/uni-diary/tests"
)

func Test_lessonApi_query(t *testing.T) {
	app := setup(t)
	student := app.createUser(t, "Student", "student@test.io", user.RoleStudent)
	token := app.getToken(t, student)

	physics := testutil.CreateLesson(t, app.lsnRepo, "Физика", "Вторник", "11:40", "13:15")
	maths := testutil.CreateLesson(t, app.lsnRepo, "Математика", "Понедельник", "09:00", "10:35")
	history := testutil.CreateLesson(t, app.lsnRepo, "История", "Понедельник", "13:30", "15:05")
	english := testutil.CreateLesson(t, app.lsnRepo, "Английский", "Понедельник", "08:00", "09:35")

	path := func(day string) string {
		v := make(url.Values)
		v.Set("day", day)
		return "/api/lessons?" + v.Encode()
	}

	tests := []httpTest{
		{name: "Auth required", path: "/api/lessons", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Whole week", path: "/api/lessons", token: token, wantCode: http.StatusOK,
			wantData: marchallList(t, english, maths, physics, history),
		},
		{
			name: "Monday", path: path("Понедельник"), token: token, wantCode: http.StatusOK,
			wantData: marchallList(t, english, maths, history),
		},
		{name: "Free day", path: path("Воскресенье"), token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "Unknown day", path: path("Someday"), token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	runHTTPTests(t, app, tests)
}

func Test_lessonApi_create(t *testing.T) {
	app := setup(t)
	student := app.createUser(t, "Student", "student@test.io", user.RoleStudent)
	teacher := app.createUser(t, "Teacher", "teacher@test.io", user.RoleTeacher)
	admin := app.createUser(t, "Admin", "admin@test.io", user.RoleAdmin)

	valid := lesson.NewLesson{
		Title:     "Физика <3>",
		Teacher:   "Сидоров С.С.",
		Room:      "204",
		Day:       "Среда",
		StartTime: "09:00",
		EndTime:   "10:35",
	}
	withTimes := func(start, end string) []byte {
		nl := valid
		nl.StartTime, nl.EndTime = start, end
		return marchallObj(t, nl)
	}

	tests := []httpTest{
		{name: "Auth required", body: marchallObj(t, valid), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Student forbidden", body: marchallObj(t, valid), token: app.getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Teacher forbidden", body: marchallObj(t, valid), token: app.getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Unpadded time", body: withTimes("9:00", "10:35"), token: app.getToken(t, admin),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"start_time": "time must be formatted as HH:MM"}),
		},
		{
			name: "Ends before start", body: withTimes("10:35", "09:00"), token: app.getToken(t, admin),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"end_time": "lesson must end after it starts"}),
		},
		{
			name: "Unknown day", body: marchallObj(t, lesson.NewLesson{Title: "X", Teacher: "Y", Room: "1", Day: "Monday", StartTime: "09:00", EndTime: "10:00"}),
			token: app.getToken(t, admin), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"day": "unknown day of the week"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/lessons"
	}
	runHTTPTests(t, app, tests)
	assert.Empty(t, app.notifier.Messages())

	t.Run("Admin", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/lessons", app.getToken(t, admin), marchallObj(t, valid))
		app.serve(req, rec)
		if !assert.Equal(t, http.StatusCreated, rec.Code) {
			return
		}

		lessons, err := app.lsnRepo.QueryLessons(ctxBg(), lesson.QueryFilter{})
		if err != nil {
			t.Fatalf("QueryLessons() failed: %v", err)
		}
		if assert.Len(t, lessons, 1) {
			assert.Equal(t, lesson.TypeLecture, lessons[0].Type)
			assert.JSONEq(t, string(marchallObj(t, lessons[0])), rec.Body.String())
		}

		msgs := app.notifier.Messages()
		if assert.Len(t, msgs, 1) {
			assert.Contains(t, msgs[0], "Новая пара!")
			assert.Contains(t, msgs[0], "Физика &lt;3&gt;")
			assert.Contains(t, msgs[0], "Среда, 09:00 - 10:35")
		}
	})
}

func Test_lessonApi_destroy(t *testing.T) {
	app := setup(t)
	teacher := app.createUser(t, "Teacher", "teacher@test.io", user.RoleTeacher)
	admin := app.createUser(t, "Admin", "admin@test.io", user.RoleAdmin)
	maths := testutil.CreateLesson(t, app.lsnRepo, "Математика", "Понедельник", "09:00", "10:35")

	tests := []httpTest{
		{name: "Auth required", path: "/api/lessons/" + maths.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher forbidden", path: "/api/lessons/" + maths.ID, token: app.getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "Existing", path: "/api/lessons/" + maths.ID, token: app.getToken(t, admin), wantCode: http.StatusNoContent},
		{name: "Already deleted", path: "/api/lessons/" + maths.ID, token: app.getToken(t, admin), wantCode: http.StatusNoContent},
		{name: "Malformed id", path: "/api/lessons/not-an-id", token: app.getToken(t, admin), wantCode: http.StatusNoContent},
	}
	for i := range tests {
		tests[i].method = http.MethodDelete
	}
	runHTTPTests(t, app, tests)

	lessons, err := app.lsnRepo.QueryLessons(ctxBg(), lesson.QueryFilter{})
	if assert.NoError(t, err) {
		assert.Empty(t, lessons)
	}
}
