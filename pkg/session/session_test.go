package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getidkit/idkit/internal/id"
)

func newTestRegistry(t *testing.T, opts ...id.Option) *Registry {
	t.Helper()
	gen, err := id.NewGenerator(opts...)
	require.NoError(t, err)
	return NewRegistry(gen, nil)
}

func TestCreateAndGet(t *testing.T) {
	r := newTestRegistry(t)

	s, err := r.Create("alpha")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "alpha", s.Name)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Equal(t, s.CreatedAt, s.LastSeenAt)

	got, ok := r.Get(s.ID)
	require.True(t, ok)
	assert.Equal(t, s, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestCreate_UniqueIDs(t *testing.T) {
	r := newTestRegistry(t)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		s, err := r.Create("")
		require.NoError(t, err)
		require.False(t, seen[s.ID])
		seen[s.ID] = true
	}
	assert.Equal(t, 200, r.Count())
}

func TestCreate_SurfacesGeneratorSaturation(t *testing.T) {
	r := newTestRegistry(t, id.WithAlphabet("Z"), id.WithLength(1), id.WithMaxAttempts(10))

	_, err := r.Create("first")
	require.NoError(t, err)

	_, err = r.Create("second")
	require.Error(t, err)
	assert.ErrorIs(t, err, id.ErrSaturated)
	assert.Equal(t, 1, r.Count())
}

func TestTouch(t *testing.T) {
	r := newTestRegistry(t)

	s, err := r.Create("t")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	touched, ok := r.Touch(s.ID)
	require.True(t, ok)
	assert.True(t, touched.LastSeenAt.After(s.LastSeenAt))

	stored, _ := r.Get(s.ID)
	assert.Equal(t, touched.LastSeenAt, stored.LastSeenAt)

	_, ok = r.Touch("missing")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	r := newTestRegistry(t)

	s, err := r.Create("doomed")
	require.NoError(t, err)

	assert.True(t, r.Delete(s.ID))
	_, ok := r.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())

	// Second delete is a no-op.
	assert.False(t, r.Delete(s.ID))
}

func TestList_OrderedByCreation(t *testing.T) {
	r := newTestRegistry(t)

	var ids []string
	for i := 0; i < 5; i++ {
		s, err := r.Create("s")
		require.NoError(t, err)
		ids = append(ids, s.ID)
		time.Sleep(2 * time.Millisecond)
	}

	list := r.List()
	require.Len(t, list, 5)
	for i, s := range list {
		assert.Equal(t, ids[i], s.ID)
	}
}
