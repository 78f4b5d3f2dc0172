package transport

import (
	"testing"
	"time"
)

func TestEventQueuePushPopFIFO(t *testing.T) {
	q := newEventQueue()
	q.push(ClipboardEvent{SourceApp: "a"})
	q.push(ClipboardEvent{SourceApp: "b"})

	ev, ok := q.pop()
	if !ok || ev.SourceApp != "a" {
		t.Fatalf("expected a first, got %v ok=%v", ev, ok)
	}
	ev, ok = q.pop()
	if !ok || ev.SourceApp != "b" {
		t.Fatalf("expected b second, got %v ok=%v", ev, ok)
	}
}

func TestEventQueuePopBlocksUntilPush(t *testing.T) {
	q := newEventQueue()
	done := make(chan ClipboardEvent, 1)
	go func() {
		ev, _ := q.pop()
		done <- ev
	}()

	time.Sleep(10 * time.Millisecond)
	q.push(ClipboardEvent{SourceApp: "late"})

	select {
	case ev := <-done:
		if ev.SourceApp != "late" {
			t.Errorf("expected late, got %v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for pop to unblock")
	}
}

func TestEventQueueDropsOldestWhenFull(t *testing.T) {
	q := newEventQueue()
	for i := 0; i < queueCapacity+5; i++ {
		q.push(ClipboardEvent{Timestamp: int64(i)})
	}
	ev, ok := q.pop()
	if !ok || ev.Timestamp != 5 {
		t.Fatalf("expected oldest surviving event to be timestamp 5, got %v", ev)
	}
}

func TestEventQueueCloseUnblocksPop(t *testing.T) {
	q := newEventQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.close()

	select {
	case ok := <-done:
		if ok {
			t.Error("expected pop to report no event after close")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for close to unblock pop")
	}
}

func TestServerBroadcastFansOutToAllStreams(t *testing.T) {
	s := NewServer()
	q1 := newEventQueue()
	q2 := newEventQueue()
	s.streams[q1] = struct{}{}
	s.streams[q2] = struct{}{}

	s.Broadcast(ClipboardEvent{SourceApp: "x"})

	for _, q := range []*eventQueue{q1, q2} {
		ev, ok := q.pop()
		if !ok || ev.SourceApp != "x" {
			t.Errorf("expected broadcast event, got %v ok=%v", ev, ok)
		}
	}
}
