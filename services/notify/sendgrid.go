package notifysvc

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mocnepiwko/uni-diary/core"
)

const sendgridChannel = "sendgrid"

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"

	tagRegex = regexp.MustCompile(`<[^>]*>`)
)

// SendgridNotifier mails a copy of every notification to a fixed address.
type SendgridNotifier struct {
	key     string
	host    string
	from    *sgmail.Email
	to      *sgmail.Email
	subject string
	logger  core.Logger
}

var _ core.Notifier = (*SendgridNotifier)(nil)

func NewSendgridNotifier(conf *core.Config, logger core.Logger) *SendgridNotifier {
	return &SendgridNotifier{
		key:     conf.Sendgrid.APIKey,
		host:    host,
		from:    sgmail.NewEmail(conf.AppName, conf.Sendgrid.FromEmail),
		to:      sgmail.NewEmail("", conf.Sendgrid.ToEmail),
		subject: "[" + conf.AppName + "] Notification",
		logger:  logger,
	}
}

func (n SendgridNotifier) prepare(text string) *sgmail.SGMailV3 {
	plain := html.UnescapeString(tagRegex.ReplaceAllString(text, ""))
	htmlContent := strings.ReplaceAll(text, "\n", "<br>")
	return sgmail.NewSingleEmail(n.from, n.subject, n.to, plain, htmlContent)
}

func (n SendgridNotifier) Send(_ context.Context, text string) {
	req := sendgrid.GetRequest(n.key, endpoint, n.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(n.prepare(text))

	res, err := sendgrid.API(req)
	if err != nil {
		record(sendgridChannel, statusFailed)
		n.logger.Error(fmt.Sprintf("sending email: %v", err), err)
		return
	}
	if res.StatusCode >= http.StatusBadRequest {
		record(sendgridChannel, statusFailed)
		n.logger.Error(fmt.Sprintf("sending email - status: %d - Body: %s", res.StatusCode, res.Body))
		return
	}
	record(sendgridChannel, statusSent)
}
