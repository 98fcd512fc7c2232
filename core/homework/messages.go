package homework

import "github.com/mocnepiwko/uni-diary/core"

var newHomeworkTmpl = core.MustParseMessage("new_homework", `📝 <b>Новое ДЗ!</b>

📚 <b>Предмет:</b> {{esc .Subject}}
⚠️ <b>Задание:</b> {{esc .Description}}
⏰ <b>Дедлайн:</b> {{.Deadline.Format "02.01.2006"}}
👤 <b>Добавил:</b> {{esc .CreatedBy}}`)

// NewHomeworkMessage announces a new assignment.
func NewHomeworkMessage(hw Homework) (string, error) {
	return core.RenderMessage(newHomeworkTmpl, hw)
}
