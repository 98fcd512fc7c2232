package notifysvc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/tests"
)

const testToken = "123456:ABC-DEF"

type sentMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

// fakeBotAPI answers getMe & sendMessage like the Bot API does.
type fakeBotAPI struct {
	*httptest.Server
	mu       sync.Mutex
	messages []sentMessage
	calls    map[string]int
	fail     bool
	down     int // requests answered with 502 before the api recovers
}

func newFakeBotAPI(t *testing.T) *fakeBotAPI {
	api := &fakeBotAPI{calls: make(map[string]int)}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.calls[strings.TrimPrefix(r.URL.Path, "/bot"+testToken+"/")]++
		if api.down > 0 {
			api.down--
			api.mu.Unlock()
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `{"ok":false,"error_code":502,"description":"Bad Gateway"}`)
			return
		}
		api.mu.Unlock()

		if !strings.HasPrefix(r.URL.Path, "/bot"+testToken+"/") {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
			return
		}
		_ = r.ParseForm()

		switch strings.TrimPrefix(r.URL.Path, "/bot"+testToken+"/") {
		case "getMe":
			_, _ = io.WriteString(w, `{"ok":true,"result":{"id":123456,"is_bot":true,"first_name":"Uni Diary","username":"uni_diary_bot"}}`)
		case "sendMessage":
			api.mu.Lock()
			defer api.mu.Unlock()
			if api.fail {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
				return
			}
			api.messages = append(api.messages, sentMessage{
				ChatID:    r.PostForm.Get("chat_id"),
				Text:      r.PostForm.Get("text"),
				ParseMode: r.PostForm.Get("parse_mode"),
			})
			_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":1740992940,"chat":{"id":-100500,"type":"supergroup"}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	}))
	t.Cleanup(api.Close)
	return api
}

func (api *fakeBotAPI) Messages() []sentMessage {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]sentMessage(nil), api.messages...)
}

func (api *fakeBotAPI) Calls(method string) int {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.calls[method]
}

func (api *fakeBotAPI) conf(chatID string) core.TelegramConfig {
	return core.TelegramConfig{
		Token:       testToken,
		ChatID:      chatID,
		APIEndpoint: api.URL + "/bot%s/%s",
		Timeout:     5 * time.Second,
	}
}

func count(channel, status string) float64 {
	return promtest.ToFloat64(notificationsTotal.WithLabelValues(channel, status))
}

func TestNewTelegramNotifier(t *testing.T) {
	api := newFakeBotAPI(t)

	tests := []struct {
		name        string
		conf        core.TelegramConfig
		wantErr     error
		wantErrStr  string
		wantChatID  int64
		wantChannel string
	}{
		{name: "no token", conf: core.TelegramConfig{ChatID: "-100500"}, wantErr: ErrNotConfigured},
		{name: "bad chat id", conf: api.conf("students"), wantErrStr: `invalid telegram chat id "students"`},
		{name: "numeric chat id", conf: api.conf(" -100500 "), wantChatID: -100500},
		{name: "channel", conf: api.conf("@uni_diary"), wantChannel: "@uni_diary"},
		{name: "no chat id", conf: api.conf("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewTelegramNotifier(tt.conf, testutil.NopLogger{})
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrStr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantChatID, n.chatID)
				assert.Equal(t, tt.wantChannel, n.channel)
			}
		})
	}
	assert.Zero(t, api.Calls("getMe"), "building a notifier must not reach the api")
}

func TestTelegramNotifier_Send(t *testing.T) {
	api := newFakeBotAPI(t)
	ctx := context.Background()

	group, err := NewTelegramNotifier(api.conf("-100500"), testutil.NopLogger{})
	require.NoError(t, err)
	channel, err := NewTelegramNotifier(api.conf("@uni_diary"), testutil.NopLogger{})
	require.NoError(t, err)
	unset, err := NewTelegramNotifier(api.conf(""), testutil.NopLogger{})
	require.NoError(t, err)

	sent, skipped := count(telegramChannel, statusSent), count(telegramChannel, statusSkipped)

	group.Send(ctx, "📅 <b>Новая пара!</b>")
	channel.Send(ctx, "📝 <b>Новое ДЗ!</b>")
	unset.Send(ctx, "lost")
	group.Reply(ctx, 42, "🆔 ID этого чата: <code>42</code>")

	assert.Equal(t, []sentMessage{
		{ChatID: "-100500", Text: "📅 <b>Новая пара!</b>", ParseMode: "HTML"},
		{ChatID: "@uni_diary", Text: "📝 <b>Новое ДЗ!</b>", ParseMode: "HTML"},
		{ChatID: "42", Text: "🆔 ID этого чата: <code>42</code>", ParseMode: "HTML"},
	}, api.Messages())
	assert.Equal(t, sent+3, count(telegramChannel, statusSent))
	assert.Equal(t, skipped+1, count(telegramChannel, statusSkipped))
}

func TestTelegramNotifier_Send_failure(t *testing.T) {
	api := newFakeBotAPI(t)

	n, err := NewTelegramNotifier(api.conf("-100500"), testutil.NopLogger{})
	require.NoError(t, err)
	failed := count(telegramChannel, statusFailed)

	api.mu.Lock()
	api.fail = true
	api.mu.Unlock()
	assert.NotPanics(t, func() { n.Send(context.Background(), "hello") })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Send(ctx, "hello")

	conf := api.conf("-100500")
	conf.Token = "lol"
	unauthorized, err := NewTelegramNotifier(conf, testutil.NopLogger{})
	require.NoError(t, err)
	unauthorized.Send(context.Background(), "hello")

	assert.Empty(t, api.Messages())
	assert.Equal(t, failed+3, count(telegramChannel, statusFailed))
}

func TestConsoleNotifier(t *testing.T) {
	skipped := count(consoleChannel, statusSkipped)

	n := NewConsoleNotifierMock(testutil.NopLogger{})
	n.Send(context.Background(), "hello")
	n.Reply(context.Background(), 42, "hello")

	assert.Equal(t, skipped+2, count(consoleChannel, statusSkipped))
}

type sendgridCall struct {
	Auth string
	Body map[string]interface{}
}

func newFakeSendgrid(t *testing.T, status int) (*httptest.Server, *[]sendgridCall) {
	var (
		mu    sync.Mutex
		calls []sendgridCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, endpoint, r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		calls = append(calls, sendgridCall{Auth: r.Header.Get("Authorization"), Body: body})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func sendgridConf(t *testing.T) *core.Config {
	conf, err := core.LoadConfig("TEST", t.TempDir())
	require.NoError(t, err)
	conf.Sendgrid = core.SendgridConfig{APIKey: "SG.test", FromEmail: "bot@unidiary.ru", ToEmail: "group@unidiary.ru"}
	return conf
}

func TestSendgridNotifier_Send(t *testing.T) {
	srv, calls := newFakeSendgrid(t, http.StatusAccepted)

	n := NewSendgridNotifier(sendgridConf(t), testutil.NopLogger{})
	n.host = srv.URL
	sent := count(sendgridChannel, statusSent)

	n.Send(context.Background(), "📅 <b>Новая пара!</b>\n\n📚 <b>Предмет:</b> C++ &amp; Go")

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "Bearer SG.test", call.Auth)
	assert.Equal(t, "[Uni Diary] Notification", call.Body["subject"])

	content := make(map[string]string)
	items, _ := call.Body["content"].([]interface{})
	for _, item := range items {
		if c, ok := item.(map[string]interface{}); ok {
			content[c["type"].(string)] = c["value"].(string)
		}
	}
	assert.Equal(t, "📅 Новая пара!\n\n📚 Предмет: C++ & Go", content["text/plain"])
	assert.Equal(t, "📅 <b>Новая пара!</b><br><br>📚 <b>Предмет:</b> C++ &amp; Go", content["text/html"])
	assert.Equal(t, sent+1, count(sendgridChannel, statusSent))
}

func TestSendgridNotifier_Send_failure(t *testing.T) {
	srv, calls := newFakeSendgrid(t, http.StatusUnauthorized)

	n := NewSendgridNotifier(sendgridConf(t), testutil.NopLogger{})
	n.host = srv.URL
	failed := count(sendgridChannel, statusFailed)

	n.Send(context.Background(), "hello")
	assert.Len(t, *calls, 1)
	assert.Equal(t, failed+1, count(sendgridChannel, statusFailed))
}

func TestMultiNotifier(t *testing.T) {
	a, b := new(testutil.Notifier), new(testutil.Notifier)

	MultiNotifier{a, b}.Send(context.Background(), "hello")

	assert.Equal(t, []string{"hello"}, a.Messages())
	assert.Equal(t, []string{"hello"}, b.Messages())
}

func TestNew(t *testing.T) {
	api := newFakeBotAPI(t)

	t.Run("no bot", func(t *testing.T) {
		conf, err := core.LoadConfig("TEST", t.TempDir())
		require.NoError(t, err)

		notifier, replier := New(conf, testutil.NopLogger{})
		assert.IsType(t, &ConsoleNotifier{}, notifier)
		assert.IsType(t, &ConsoleNotifier{}, replier)
		assert.NotPanics(t, func() { notifier.Send(context.Background(), "hello") })
	})

	t.Run("api down at startup", func(t *testing.T) {
		conf, err := core.LoadConfig("TEST", t.TempDir())
		require.NoError(t, err)
		conf.Telegram = api.conf("-100500")

		api.mu.Lock()
		api.down = 1
		api.mu.Unlock()

		notifier, _ := New(conf, testutil.NopLogger{})
		require.IsType(t, &TelegramNotifier{}, notifier)

		notifier.Send(context.Background(), "lost while down")
		notifier.Send(context.Background(), "first after recovery")
		notifier.Send(context.Background(), "second after recovery")

		assert.Equal(t, 3, api.Calls("sendMessage"))
		assert.Equal(t, []sentMessage{
			{ChatID: "-100500", Text: "first after recovery", ParseMode: "HTML"},
			{ChatID: "-100500", Text: "second after recovery", ParseMode: "HTML"},
		}, api.Messages())
	})

	t.Run("malformed chat id", func(t *testing.T) {
		conf, err := core.LoadConfig("TEST", t.TempDir())
		require.NoError(t, err)
		conf.Telegram = api.conf("students")

		notifier, replier := New(conf, testutil.NopLogger{})
		assert.IsType(t, &ConsoleNotifier{}, notifier)
		assert.IsType(t, &ConsoleNotifier{}, replier)
	})

	t.Run("bot", func(t *testing.T) {
		conf, err := core.LoadConfig("TEST", t.TempDir())
		require.NoError(t, err)
		conf.Telegram = api.conf("-100500")

		notifier, replier := New(conf, testutil.NopLogger{})
		assert.IsType(t, &TelegramNotifier{}, notifier)
		assert.IsType(t, &TelegramNotifier{}, replier)
	})

	t.Run("bot and email", func(t *testing.T) {
		conf := sendgridConf(t)
		conf.Telegram = api.conf("-100500")

		notifier, replier := New(conf, testutil.NopLogger{})
		if multi, ok := notifier.(MultiNotifier); assert.True(t, ok) {
			require.Len(t, multi, 2)
			assert.IsType(t, &TelegramNotifier{}, multi[0])
			assert.IsType(t, &SendgridNotifier{}, multi[1])
		}
		assert.IsType(t, &TelegramNotifier{}, replier)
	})
}
