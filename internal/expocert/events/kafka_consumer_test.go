package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func testMessage(t *testing.T) kafka.Message {
	t.Helper()
	value, err := json.Marshal(Event{Type: CertApproved, Payload: testPayload()})
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestConsumer_HandleMessage(t *testing.T) {
	t.Run("dispatches decoded event to handler", func(t *testing.T) {
		var got Event
		consumer := &Consumer{
			logger: zaptest.NewLogger(t),
			handler: func(_ context.Context, event Event) error {
				got = event
				return nil
			},
		}

		err := consumer.handleMessage(context.Background(), testMessage(t))

		assert.NoError(t, err)
		assert.Equal(t, CertApproved, got.Type)
		assert.Equal(t, testPayload().Caller, got.Payload.Caller)
	})

	t.Run("nil handler drops event with warning", func(t *testing.T) {
		core, recorded := observer.New(zap.WarnLevel)
		consumer := &Consumer{logger: zap.New(core)}

		var err error
		assert.NotPanics(t, func() {
			err = consumer.handleMessage(context.Background(), testMessage(t))
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, recorded.FilterMessage("No event handler registered, dropping event").Len())
	})

	t.Run("handler error blocks commit", func(t *testing.T) {
		consumer := &Consumer{
			logger: zaptest.NewLogger(t),
			handler: func(context.Context, Event) error {
				return assert.AnError
			},
		}

		err := consumer.handleMessage(context.Background(), testMessage(t))

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		called := false
		consumer := &Consumer{
			logger: zaptest.NewLogger(t),
			handler: func(context.Context, Event) error {
				called = true
				return nil
			},
		}

		err := consumer.handleMessage(context.Background(), kafka.Message{Value: []byte("not json")})

		assert.Error(t, err)
		assert.False(t, called)
	})
}
