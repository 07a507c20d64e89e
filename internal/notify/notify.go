package notify

import (
	"context"
	"sync"

	"github.com/angelmondragon/rocketcart/internal/cart"
	"github.com/angelmondragon/rocketcart/pkg/logger"
)

// DefaultInboxSize bounds the messages an Inbox retains.
const DefaultInboxSize = 16

// Log writes every notification as a warning log line.
type Log struct {
	logg *logger.Logger
}

func NewLog(logg *logger.Logger) *Log {
	return &Log{logg: logg}
}

func (l *Log) Warn(ctx context.Context, message string) {
	if l == nil || l.logg == nil {
		return
	}
	l.logg.Warn(l.logg.WithField(ctx, "notification", message), "cart.notification")
}

// Inbox buffers notifications until they are drained. Once full, the oldest
// message is dropped so Warn never blocks.
type Inbox struct {
	mu       sync.Mutex
	limit    int
	messages []string
	dropped  int
}

func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = DefaultInboxSize
	}
	return &Inbox{limit: limit}
}

func (i *Inbox) Warn(_ context.Context, message string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.messages) == i.limit {
		i.messages = i.messages[1:]
		i.dropped++
	}
	i.messages = append(i.messages, message)
}

// Drain returns the buffered messages in arrival order and empties the inbox.
func (i *Inbox) Drain() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, len(i.messages))
	copy(out, i.messages)
	i.messages = nil
	return out
}

// Dropped counts messages discarded because the inbox was full.
func (i *Inbox) Dropped() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.dropped
}

type inboxKey struct{}

// WithInbox attaches inbox to ctx so a Contextual notifier delivers into it.
func WithInbox(ctx context.Context, inbox *Inbox) context.Context {
	return context.WithValue(ctx, inboxKey{}, inbox)
}

func InboxFrom(ctx context.Context) (*Inbox, bool) {
	if ctx == nil {
		return nil, false
	}
	inbox, ok := ctx.Value(inboxKey{}).(*Inbox)
	return inbox, ok && inbox != nil
}

// Contextual delivers to the Inbox carried by the call's context, if any.
type Contextual struct{}

func (Contextual) Warn(ctx context.Context, message string) {
	if inbox, ok := InboxFrom(ctx); ok {
		inbox.Warn(ctx, message)
	}
}

// Multi fans a notification out to every notifier.
type Multi []cart.Notifier

func (m Multi) Warn(ctx context.Context, message string) {
	for _, n := range m {
		if n != nil {
			n.Warn(ctx, message)
		}
	}
}
