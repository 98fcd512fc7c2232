package notifysvc

import (
	"context"

	"github.com/mocnepiwko/uni-diary/core"
)

// MultiNotifier hands every message to each notifier in turn.
type MultiNotifier []core.Notifier

var _ core.Notifier = MultiNotifier(nil)

func (m MultiNotifier) Send(ctx context.Context, text string) {
	for _, n := range m {
		n.Send(ctx, text)
	}
}
