package notify

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_DeliversOnlyToCalendar(t *testing.T) {
	b := NewBroker(zerolog.Nop())

	ch1, cancel1 := b.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := b.Subscribe(2)
	defer cancel2()

	b.Publish(Update{CalendarID: 1, DateKey: "2026-03-09", Action: ActionCreated, AppointmentID: 7})

	select {
	case u := <-ch1:
		assert.Equal(t, uint(7), u.AppointmentID)
		assert.Equal(t, ActionCreated, u.Action)
	case <-time.After(time.Second):
		t.Fatal("expected update on calendar 1")
	}

	select {
	case u := <-ch2:
		t.Fatalf("unexpected update on calendar 2: %+v", u)
	default:
	}
}

func TestBroker_CancelClosesAndIsIdempotent(t *testing.T) {
	b := NewBroker(zerolog.Nop())

	ch, cancel := b.Subscribe(1)
	require.Equal(t, 1, b.SubscriberCount(1))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.SubscriberCount(1))

	b.Publish(Update{CalendarID: 1})
}

func TestBroker_PublishDoesNotBlockWhenFull(t *testing.T) {
	b := NewBroker(zerolog.Nop())
	_, cancel := b.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			b.Publish(Update{CalendarID: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}
