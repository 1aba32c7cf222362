package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SchedulePubSub broadcasts schedule changes (new or removed sessions,
// ticket sales) so other processes can drop their cached projections.
type SchedulePubSub struct {
	rdb     *redis.Client
	channel string
}

func NewSchedulePubSub(rdb *redis.Client) *SchedulePubSub {
	return &SchedulePubSub{
		rdb:     rdb,
		channel: ChannelScheduleChanged(),
	}
}

type scheduleChangedMsg struct {
	Type      string `json:"type"`
	SessionID int64  `json:"session_id"`
	TsUnix    int64  `json:"ts_unix"`
}

func (p *SchedulePubSub) PublishScheduleChanged(ctx context.Context, sessionID int64) error {
	msg := scheduleChangedMsg{
		Type:      "schedule_changed",
		SessionID: sessionID,
		TsUnix:    time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *SchedulePubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, sessionID int64)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev scheduleChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil {
				handler(ctx, ev.SessionID)
			}
		}
	}
}
