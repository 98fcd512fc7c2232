package lesson

import (
	"time"

	"github.com/mocnepiwko/uni-diary/core"
)

var (
	newLessonTmpl = core.MustParseMessage("new_lesson", `📅 <b>Новая пара!</b>

📚 <b>Предмет:</b> {{esc .Title}}
👨‍🏫 <b>Препод:</b> {{esc .Teacher}}
🚪 <b>Кабинет:</b> {{esc .Room}}
⏰ <b>Время:</b> {{esc .Day}}, {{.StartTime}} - {{.EndTime}}
ℹ️ <b>Тип:</b> {{.Type}}`)

	reminderTmpl = core.MustParseMessage("reminder", `🏃‍♂️ <b>Через {{.Minutes}} минут пара!</b>

📚 <b>Предмет:</b> {{esc .Lesson.Title}}
🚪 <b>Аудитория:</b> {{esc .Lesson.Room}}
👨‍🏫 <b>Препод:</b> {{esc .Lesson.Teacher}}
ℹ️ <b>Тип:</b> {{.Lesson.Type}}
⏰ <b>Начало:</b> {{.Lesson.StartTime}}`)

	dayScheduleTmpl = core.MustParseMessage("day_schedule", `{{if .Lessons}}📅 <b>Расписание на {{esc .Day}}:</b>
{{range .Lessons}}
⏰ <b>{{.StartTime}} - {{.EndTime}}</b>
📚 {{esc .Title}} ({{.Type}})
👨‍🏫 {{esc .Teacher}}
🚪 {{esc .Room}}
{{end}}{{else}}📅 <b>{{esc .Day}}</b>

Пар нет! Отдыхай 😴{{end}}`)
)

// NewLessonMessage announces a freshly scheduled lesson.
func NewLessonMessage(l Lesson) (string, error) {
	return core.RenderMessage(newLessonTmpl, l)
}

// ReminderMessage warns that l starts in lookahead.
func ReminderMessage(l Lesson, lookahead time.Duration) (string, error) {
	return core.RenderMessage(reminderTmpl, struct {
		Lesson  Lesson
		Minutes int
	}{l, int(lookahead / time.Minute)})
}

// DayScheduleMessage lists the lessons of day, in the given order.
func DayScheduleMessage(day string, lessons []Lesson) (string, error) {
	return core.RenderMessage(dayScheduleTmpl, struct {
		Day     string
		Lessons []Lesson
	}{day, lessons})
}
