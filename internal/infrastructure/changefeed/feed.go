package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Table names the collection a change happened in.
type Table string

const (
	TableConversations       Table = "conversations"
	TableConversationMembers Table = "conversation_members"
	TableMessages            Table = "messages"
	TableNotifications       Table = "notifications"
)

// Op is the kind of row change.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Event describes a single row change. Keys holds the columns subscriptions may
// filter on (e.g. conversation_id, recipient_id); New holds the row as JSON.
type Event struct {
	Table  Table             `json:"table"`
	Op     Op                `json:"op"`
	Keys   map[string]string `json:"keys"`
	New    json.RawMessage   `json:"new,omitempty"`
	Origin string            `json:"origin,omitempty"`
	At     time.Time         `json:"at"`
}

// NewEvent encodes row as the event payload.
func NewEvent(table Table, op Op, keys map[string]string, row any) (Event, error) {
	ev := Event{Table: table, Op: op, Keys: keys, At: time.Now().UTC()}
	if row != nil {
		b, err := json.Marshal(row)
		if err != nil {
			return Event{}, fmt.Errorf("changefeed: encode %s row: %w", table, err)
		}
		ev.New = b
	}
	return ev, nil
}

// Decode unmarshals the row payload into v.
func (e Event) Decode(v any) error {
	if len(e.New) == 0 {
		return fmt.Errorf("changefeed: %s %s event has no row", e.Table, e.Op)
	}
	return json.Unmarshal(e.New, v)
}

// Filter restricts a subscription to rows whose Column equals Value.
// The zero Filter matches every row.
type Filter struct {
	Column string
	Value  string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Value: value}
}

func (f Filter) String() string {
	if f.Column == "" {
		return "*"
	}
	return f.Column + "=eq." + f.Value
}

// Topic selects the events a subscription receives. An empty Ops list means every op.
type Topic struct {
	Table  Table
	Ops    []Op
	Filter Filter
}

func (t Topic) Matches(ev Event) bool {
	if ev.Table != t.Table {
		return false
	}
	if len(t.Ops) > 0 {
		found := false
		for _, op := range t.Ops {
			if op == ev.Op {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if t.Filter.Column == "" {
		return true
	}
	v, ok := ev.Keys[t.Filter.Column]
	return ok && v == t.Filter.Value
}

// Handler consumes events for one subscription. Calls for the same
// subscription never overlap and arrive in publish order.
type Handler func(ctx context.Context, ev Event)

// Subscription is released with Unsubscribe; releasing twice is a no-op.
type Subscription interface {
	Unsubscribe()
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type Subscriber interface {
	Subscribe(topic Topic, h Handler) (Subscription, error)
}

// Feed is the full change-feed contract used by the service.
type Feed interface {
	Publisher
	Subscriber
}

// Emit builds and publishes an event; a nil publisher makes it a no-op so
// use cases can run without a live bridge.
func Emit(ctx context.Context, p Publisher, table Table, op Op, keys map[string]string, row any) error {
	if p == nil {
		return nil
	}
	ev, err := NewEvent(table, op, keys, row)
	if err != nil {
		return err
	}
	return p.Publish(ctx, ev)
}
