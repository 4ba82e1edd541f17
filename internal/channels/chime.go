package channels

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// ChimeTopic is the Redis pub/sub channel connected clients listen on for
// the audible cue.
const ChimeTopic = "notifications:chime"

// ChimeChannel publishes the notification ID to a Redis pub/sub channel so
// connected clients can play their sound cue. Nobody listening is fine; the
// publish is best effort.
type ChimeChannel struct {
	client *redis.Client
}

func NewChimeChannel(client *redis.Client) *ChimeChannel {
	return &ChimeChannel{client: client}
}

func (c *ChimeChannel) Name() string {
	return "chime"
}

func (c *ChimeChannel) Deliver(ctx context.Context, n models.Notification) error {
	return c.client.Publish(ctx, ChimeTopic, n.ID).Err()
}

var _ Channel = (*ChimeChannel)(nil)
