package core

import "context"

type (
	// Notifier delivers a text message to the configured group chat.
	// Delivery is best-effort: implementations log failures and never report them to the caller.
	Notifier interface {
		Send(ctx context.Context, text string)
	}

	// Replier answers an inbound chat message in the chat it came from.
	Replier interface {
		Reply(ctx context.Context, chatID int64, text string)
	}
)
