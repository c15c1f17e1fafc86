package store

import (
	"sync"
	"testing"

	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservable_SubscribeReceivesCurrentAndUpdates(t *testing.T) {
	obs := NewObservable(1)

	var seen []int
	unsubscribe := obs.Subscribe(func(v int) { seen = append(seen, v) })

	obs.Set(2)
	obs.Update(func(v int) int { return v * 10 })

	assert.Equal(t, []int{1, 2, 20}, seen)
	assert.Equal(t, 20, obs.Get())

	unsubscribe()
	unsubscribe()
	obs.Set(3)
	assert.Equal(t, []int{1, 2, 20}, seen)
}

func TestObservable_NotifiesInRegistrationOrder(t *testing.T) {
	obs := NewObservable("")

	var order []string
	obs.Subscribe(func(string) { order = append(order, "a") })
	unsubB := obs.Subscribe(func(string) { order = append(order, "b") })
	obs.Subscribe(func(string) { order = append(order, "c") })

	order = nil
	unsubB()
	obs.Set("x")

	assert.Equal(t, []string{"a", "c"}, order)
}

func TestObservable_ObserverMayReadValue(t *testing.T) {
	obs := NewObservable(0)

	var read int
	obs.Subscribe(func(int) { read = obs.Get() })
	obs.Set(7)

	assert.Equal(t, 7, read)
}

func TestLocation(t *testing.T) {
	loc := NewLocation()
	assert.False(t, loc.Known())
	assert.Equal(t, models.Coordinates{}, loc.Get())

	loc.Set(models.Coordinates{Latitude: 41.583, Longitude: -8.615})
	assert.True(t, loc.Known())
	assert.Equal(t, 41.583, loc.Get().Latitude)
}

func TestNotifications_PushAssignsIncreasingIDs(t *testing.T) {
	n := NewNotifications()

	n.Push("primeira", models.NotificationInfo)
	n.Push("segunda", "")
	n.Push("terceira", models.NotificationError)

	snap := n.Snapshot()
	require.Len(t, snap, 3)
	assert.Less(t, snap[0].ID, snap[1].ID)
	assert.Less(t, snap[1].ID, snap[2].ID)
	assert.Equal(t, "primeira", snap[0].Message)
	assert.Equal(t, models.NotificationInfo, snap[1].Type)
	assert.Equal(t, models.NotificationError, snap[2].Type)
}

func TestNotifications_IDsUniqueAcrossStores(t *testing.T) {
	a := NewNotifications()
	b := NewNotifications()

	a.Push("a", models.NotificationInfo)
	b.Push("b", models.NotificationInfo)
	a.Push("c", models.NotificationInfo)

	idA := a.Snapshot()
	idB := b.Snapshot()
	assert.NotEqual(t, idA[0].ID, idB[0].ID)
	assert.Less(t, idB[0].ID, idA[1].ID)
}

func TestNotifications_SnapshotIsACopy(t *testing.T) {
	n := NewNotifications()
	n.Push("x", models.NotificationSuccess)

	snap := n.Snapshot()
	snap[0].Message = "changed"

	assert.Equal(t, "x", n.Snapshot()[0].Message)
}

func TestNotifications_ConcurrentPushKeepsOrder(t *testing.T) {
	n := NewNotifications()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Push("m", models.NotificationInfo)
		}()
	}
	wg.Wait()

	snap := n.Snapshot()
	require.Len(t, snap, 50)
	for i := 1; i < len(snap); i++ {
		assert.Less(t, snap[i-1].ID, snap[i].ID)
	}
}

func TestNotifications_OnPushAndSubscribe(t *testing.T) {
	n := NewNotifications()

	var pushed []models.Notification
	n.OnPush(func(m models.Notification) { pushed = append(pushed, m) })

	var lengths []int
	n.Subscribe(func(items []models.Notification) { lengths = append(lengths, len(items)) })

	n.Push("ok", models.NotificationSuccess)

	require.Len(t, pushed, 1)
	assert.Equal(t, "ok", pushed[0].Message)
	assert.Equal(t, []int{0, 1}, lengths)
}
