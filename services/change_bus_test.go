package services

import (
	"testing"
	"time"
)

func TestChangeBus_PublishSubscribe(t *testing.T) {
	t.Run("signal reaches the subscriber", func(t *testing.T) {
		bus := NewChangeBus()
		sub := bus.Subscribe("plates/1")
		defer sub.Cancel()

		bus.Publish("plates/1")

		select {
		case <-sub.C:
		case <-time.After(time.Second):
			t.Fatal("no signal delivered")
		}
	})

	t.Run("topics are isolated", func(t *testing.T) {
		bus := NewChangeBus()
		sub := bus.Subscribe("plates/1")
		defer sub.Cancel()

		bus.Publish("plates/2")

		select {
		case <-sub.C:
			t.Fatal("signal leaked across topics")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("burst of publishes coalesces to at least one signal", func(t *testing.T) {
		bus := NewChangeBus()
		sub := bus.Subscribe("meals/1")
		defer sub.Cancel()

		for i := 0; i < 10; i++ {
			bus.Publish("meals/1")
		}

		select {
		case <-sub.C:
		case <-time.After(time.Second):
			t.Fatal("no signal after burst")
		}
	})

	t.Run("cancel stops delivery", func(t *testing.T) {
		bus := NewChangeBus()
		sub := bus.Subscribe("goals/1")
		sub.Cancel()
		sub.Cancel() // idempotent

		bus.Publish("goals/1")

		select {
		case <-sub.C:
			t.Fatal("signal delivered after cancel")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("publish with no subscribers is harmless", func(t *testing.T) {
		NewChangeBus().Publish("nobody/home")
	})
}

func TestWatch(t *testing.T) {
	t.Run("emits initial snapshot then requeries per signal", func(t *testing.T) {
		bus := NewChangeBus()
		data := []string{"first"}

		ch, cancel := watch(bus, "t", func() ([]string, error) {
			out := make([]string, len(data))
			copy(out, data)
			return out, nil
		})
		defer cancel()

		select {
		case snap := <-ch:
			if len(snap) != 1 || snap[0] != "first" {
				t.Fatalf("initial snapshot = %v", snap)
			}
		case <-time.After(time.Second):
			t.Fatal("no initial snapshot")
		}

		data = append(data, "second")
		bus.Publish("t")

		select {
		case snap := <-ch:
			if len(snap) != 2 {
				t.Fatalf("snapshot after publish = %v", snap)
			}
		case <-time.After(time.Second):
			t.Fatal("no snapshot after publish")
		}
	})

	t.Run("cancel closes the stream", func(t *testing.T) {
		bus := NewChangeBus()
		ch, cancel := watch(bus, "t", func() ([]int, error) { return nil, nil })

		<-ch // initial
		cancel()
		cancel() // idempotent

		select {
		case _, ok := <-ch:
			if ok {
				t.Fatal("snapshot after cancel")
			}
		case <-time.After(time.Second):
			t.Fatal("stream not closed after cancel")
		}
	})
}
