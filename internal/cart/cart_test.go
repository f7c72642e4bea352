package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddIncrementsExisting(t *testing.T) {
	var c Cart
	c.Add(1, "Sign", 100)
	c.Add(1, "Sign", 100)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, float64(200), c.Total())
	assert.Equal(t, 2, c.ItemCount())
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	var c Cart
	c.Add(1, "Sign", 100)
	c.Add(2, "Frame", 250)

	c.SetQuantity(1, 0)

	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(2), c.Items[0].ProductID)

	c.SetQuantity(2, -3)
	assert.Empty(t, c.Items)
}

func TestCart_RemoveUnknownIsNoop(t *testing.T) {
	var c Cart
	c.Add(1, "Sign", 100)
	c.Remove(99)
	require.Len(t, c.Items, 1)
}

func TestCart_TotalAlwaysMatchesRecomputation(t *testing.T) {
	var c Cart
	c.Add(1, "Sign", 100)
	c.Add(2, "Frame", 250)
	c.Add(1, "Sign", 100)
	c.SetQuantity(2, 4)
	c.Remove(1)
	c.Add(3, "Plaque", 75)
	c.SetQuantity(3, 2)

	var want float64
	var count int
	for _, item := range c.Items {
		want += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	assert.Equal(t, want, c.Total())
	assert.Equal(t, count, c.ItemCount())
}

func TestStore_SnapshotSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)
	sid := s.NewSessionID()

	_, err = s.Mutate(sid, func(c *Cart) {
		c.Add(1, "Sign", 100)
		c.Add(1, "Sign", 100)
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// rehydrate from disk
	s2, err := NewStore(dir)
	require.NoError(t, err)
	defer s2.Close()

	c, err := s2.Load(sid)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, float64(200), c.Total())
}

func TestStore_LoadUnknownSessionYieldsEmptyCart(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Load("no-such-session")
	require.NoError(t, err)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
}

func TestStore_ClearDropsSnapshot(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	sid := s.NewSessionID()
	_, err = s.Mutate(sid, func(c *Cart) { c.Add(1, "Sign", 100) })
	require.NoError(t, err)

	require.NoError(t, s.Clear(sid))
	c, err := s.Load(sid)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
