package queue

import "context"

// Consumer delivers schedule messages from the broker to the worker until
// ctx is cancelled.
type Consumer interface {
	Start(ctx context.Context) error
}

// Publisher mirrors displayed notifications onto the broker under the given
// routing key.
type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}
