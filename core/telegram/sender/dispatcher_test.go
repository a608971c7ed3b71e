package sender

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m3rciful/leadbot/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCtx(chatID int64) context.Context {
	return logger.WithUpdateMeta(context.Background(), 1, 7, chatID)
}

func TestSameChatDeliversInEnqueueOrder(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4, QueueSize: 16})
	ctx := chatCtx(99)

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 4; i++ {
		i := i
		err := d.Enqueue(ctx, "send.text", "sendMessage", func() error {
			// Make the first message the slowest; with unordered
			// delivery it would finish last.
			if i == 0 {
				time.Sleep(50 * time.Millisecond)
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}
	d.Close()

	assert.Equal(t, []int{0, 1, 2, 3}, order,
		"messages for one chat must complete in enqueue order")
}

func TestSameChatAlwaysMapsToSameQueue(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4, QueueSize: 16})
	defer d.Close()

	idx := d.queueIndex(chatCtx(42))
	for i := 0; i < 10; i++ {
		assert.Equal(t, idx, d.queueIndex(chatCtx(42)))
	}
}

func TestMissingChatFallsBackToUser(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4, QueueSize: 16})
	defer d.Close()

	ctx := logger.WithUpdateMeta(context.Background(), 1, 7, 0)
	idx := d.queueIndex(ctx)
	assert.Equal(t, idx, d.queueIndex(logger.WithUpdateMeta(context.Background(), 2, 7, 0)))
}

func TestEnqueueAfterCloseIsRejected(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	d.Close()

	err := d.Enqueue(chatCtx(1), "send.text", "sendMessage", func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueClosed)
}
