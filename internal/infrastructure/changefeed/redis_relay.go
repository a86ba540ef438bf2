package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"go-hrdesk/internal/infrastructure/logger"
)

// RedisRelay makes a local Hub see changes written on other API nodes.
// Publish delivers locally first, then forwards the event to a Redis channel
// tagged with this node's id; Run republishes foreign events into the hub.
type RedisRelay struct {
	local   *Hub
	client  *redis.Client
	channel string
	nodeID  string
	log     *logger.Logger
}

func NewRedisRelay(local *Hub, client *redis.Client, channel, nodeID string, log *logger.Logger) (*RedisRelay, error) {
	if local == nil || client == nil {
		return nil, errors.New("changefeed: relay needs a hub and a redis client")
	}
	if channel == "" || nodeID == "" {
		return nil, errors.New("changefeed: relay needs a channel and a node id")
	}
	if log == nil {
		log = logger.Default()
	}
	return &RedisRelay{local: local, client: client, channel: channel, nodeID: nodeID, log: log}, nil
}

var _ Feed = (*RedisRelay)(nil)

func (r *RedisRelay) Subscribe(topic Topic, h Handler) (Subscription, error) {
	return r.local.Subscribe(topic, h)
}

func (r *RedisRelay) Publish(ctx context.Context, ev Event) error {
	ev.Origin = r.nodeID
	if err := r.local.Publish(ctx, ev); err != nil {
		return err
	}
	payload, err := EncodeWire(ev)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		// local subscribers already have the event; remote nodes will miss it
		return fmt.Errorf("changefeed: redis publish: %w", err)
	}
	return nil
}

// Run consumes the Redis channel until ctx is canceled.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("changefeed: redis subscribe: %w", err)
	}
	r.log.Infof("changefeed: relaying %q as node %s", r.channel, r.nodeID)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			ev, foreign, err := r.decode(msg.Payload)
			if err != nil {
				r.log.Error(err, "changefeed: discarding malformed relay payload")
				continue
			}
			if !foreign {
				continue
			}
			if err := r.local.Publish(ctx, ev); err != nil {
				return err
			}
		}
	}
}

func (r *RedisRelay) decode(payload string) (Event, bool, error) {
	ev, err := DecodeWire(payload)
	if err != nil {
		return Event{}, false, err
	}
	return ev, ev.Origin != r.nodeID, nil
}

func EncodeWire(ev Event) (string, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("changefeed: encode event: %w", err)
	}
	return string(b), nil
}

func DecodeWire(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("changefeed: decode event: %w", err)
	}
	if ev.Table == "" || ev.Op == "" {
		return Event{}, errors.New("changefeed: event without table or op")
	}
	return ev, nil
}
