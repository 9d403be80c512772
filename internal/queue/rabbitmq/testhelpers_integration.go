//go:build integration

package rabbitmq

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"examflow/internal/config"
)

// startBroker runs a disposable RabbitMQ and returns the worker's AMQP
// settings pointed at it. The container is removed when the test ends.
func startBroker(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.12-alpine",
			ExposedPorts: []string{"5672/tcp"},
			Env: map[string]string{
				"RABBITMQ_DEFAULT_USER": "examflow",
				"RABBITMQ_DEFAULT_PASS": "examflow",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("Server startup complete"),
				wait.ForListeningPort("5672/tcp"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	return &config.Config{
		RabbitMQURL:         fmt.Sprintf("amqp://examflow:examflow@%s:%s/", host, port.Port()),
		RabbitExchange:      "notifications",
		RabbitQueue:         "examflow.schedule",
		RabbitRoutingKey:    "schedule.*",
		RabbitConsumerTag:   "examflow-worker",
		RabbitPublishPrefix: "notification",
	}
}
