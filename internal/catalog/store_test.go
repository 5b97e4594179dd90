package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scheme-finder/internal/common/errors"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

type fakeSource struct {
	mu      sync.Mutex
	schemes []models.Scheme
	err     error
	calls   int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(context.Context) ([]models.Scheme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return clone(f.schemes), f.err
}

func (f *fakeSource) set(schemes []models.Scheme, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schemes, f.err = schemes, err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestStore_Reload(t *testing.T) {
	src := &fakeSource{schemes: Default()[:3]}
	store := NewStore(src, logger.NewTestLogger(t))
	assert.Nil(t, store.Current())

	snap, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, "fake", snap.Source)
	assert.NotEmpty(t, snap.Version)
	assert.Same(t, snap, store.Current())

	s, ok := snap.Lookup("pm-matru-vandana")
	require.True(t, ok)
	assert.Equal(t, "Pradhan Mantri Matru Vandana Yojana", s.Name)

	_, ok = snap.Lookup("pm-kisan")
	assert.False(t, ok)
}

func TestStore_ReloadKeepsPreviousOnFailure(t *testing.T) {
	src := &fakeSource{schemes: Default()}
	store := NewStore(src, logger.NewTestLogger(t))
	first, err := store.Reload(context.Background())
	require.NoError(t, err)

	src.set(nil, errors.New("connection refused"))
	_, err = store.Reload(context.Background())
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeCatalogLoadFailed, stdErr.Code)
	assert.Same(t, first, store.Current())

	src.set([]models.Scheme{}, nil)
	_, err = store.Reload(context.Background())
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeCatalogEmpty, stdErr.Code)
	assert.Same(t, first, store.Current())
}

func TestStore_HeldSnapshotUnaffectedBySwap(t *testing.T) {
	store := NewStaticStore(Default(), logger.NewNoOpLogger())
	held := store.Current()
	heldVersion := held.Version

	store.Swap(NewSnapshot("static", Default()[:1]))

	assert.Equal(t, 27, held.Len())
	assert.Equal(t, heldVersion, held.Version)
	assert.Equal(t, 1, store.Current().Len())
	assert.NotEqual(t, heldVersion, store.Current().Version)
}

func TestSnapshot_IsolatedFromInput(t *testing.T) {
	input := Default()
	snap := NewSnapshot("test", input)
	input[0].ID = "changed"
	input[0].TargetGroups[0] = "changed"

	s, ok := snap.Lookup("beti-bachao")
	require.True(t, ok)
	assert.Equal(t, "Women", s.TargetGroups[0])
}

func TestSnapshot_VersionStable(t *testing.T) {
	assert.Equal(t, NewSnapshot("a", Default()).Version, NewSnapshot("b", Default()).Version)
}

func TestStore_Refresh(t *testing.T) {
	src := &fakeSource{schemes: Default()[:2]}
	store := NewStore(src, logger.NewTestLogger(t))
	_, err := store.Reload(context.Background())
	require.NoError(t, err)

	src.set(Default()[:5], nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Refresh(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Current().Len() == 5 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.GreaterOrEqual(t, src.callCount(), 2)
}

func TestStore_RefreshDisabled(t *testing.T) {
	store := NewStaticStore(Default(), logger.NewNoOpLogger())
	// returns immediately with a non-positive interval
	store.Refresh(context.Background(), 0)
}
