package async

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int](0)

	_, ok := q.TryDequeue()
	require.False(t, ok, "dequeue should fail when queue is empty")

	for i := 0; i < 8; i++ {
		q.Enqueue(i)
	}
	require.Equal(t, 8, q.Len())

	for i := 0; i < 4; i++ {
		got, ok := q.TryDequeue()
		require.True(t, ok)
		require.Equal(t, i, got)
	}
	for i := 4; i < 8; i++ {
		require.Equal(t, i, q.Dequeue())
	}

	_, ok = q.TryDequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestDequeueWaitsForEnqueue(t *testing.T) {
	q := NewQueue[string](0)
	got := make(chan string, 1)

	go func() {
		got <- q.Dequeue()
	}()

	select {
	case v := <-got:
		t.Fatalf("dequeue returned %q from an empty queue", v)
	case <-time.After(20 * time.Millisecond):
	}

	q.Enqueue("job")
	select {
	case v := <-got:
		assert.Equal(t, "job", v)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for blocked dequeue")
	}
}

func TestBoundedEnqueueWaitsForSpace(t *testing.T) {
	q := NewQueue[int](2)
	q.Enqueue(1)
	q.Enqueue(2)

	var done atomic.Bool
	go func() {
		q.Enqueue(3)
		done.Store(true)
	}()

	time.Sleep(20 * time.Millisecond)
	require.False(t, done.Load(), "enqueue should wait while the queue is full")

	require.Equal(t, 1, q.Dequeue())

	deadline := time.Now().Add(5 * time.Second)
	for !done.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.True(t, done.Load(), "enqueue never completed after space was freed")
	assert.Equal(t, 2, q.Dequeue())
	assert.Equal(t, 3, q.Dequeue())
}

func TestQueueConcurrentExactlyOnce(t *testing.T) {
	const (
		producers   = 4
		consumers   = 4
		perProducer = 5000
		total       = producers * perProducer
	)

	for _, bound := range []int{0, 64} {
		q := NewQueue[int](bound)
		seen := make([]atomic.Int32, total)

		var producerWG sync.WaitGroup
		var consumerWG sync.WaitGroup

		for p := 0; p < producers; p++ {
			producerWG.Add(1)
			go func(base int) {
				defer producerWG.Done()
				for i := 0; i < perProducer; i++ {
					q.Enqueue(base*perProducer + i)
				}
			}(p)
		}

		for c := 0; c < consumers; c++ {
			consumerWG.Add(1)
			go func() {
				defer consumerWG.Done()
				for {
					v := q.Dequeue()
					if v < 0 {
						return
					}
					seen[v].Add(1)
				}
			}()
		}

		producerWG.Wait()
		for c := 0; c < consumers; c++ {
			q.Enqueue(-1)
		}
		consumerWG.Wait()

		for i := range seen {
			require.Equal(t, int32(1), seen[i].Load(), "bound=%d item %d", bound, i)
		}
		assert.Equal(t, 0, q.Len())
	}
}
