package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "messages.db"))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_DoesNotTouchDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.db")
	s := New(path)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "database file should not exist before Open")
	require.Equal(t, path, s.Path())
}

func TestOpen_ReturnsSameHandle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Open(ctx)
	require.NoError(t, err)
	second, err := s.Open(ctx)
	require.NoError(t, err)

	require.Same(t, first, second)
}

func TestOpen_ExistingTableIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.db")
	ctx := context.Background()

	s := New(path)
	_, err := s.Insert(ctx, "Ada", "ada@example.com", "Hello")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened := New(path)
	t.Cleanup(func() { _ = reopened.Close() })
	n, err := reopened.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestInsert_FreshStoreAssignsIDOne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Minute)
	id, err := s.Insert(ctx, "Ada", "ada@example.com", "Hello")
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	m, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Ada", m.Name)
	require.Equal(t, "ada@example.com", m.Email)
	require.Equal(t, "Hello", m.Message)
	require.True(t, m.ReceivedAt.After(before), "receivedAt %v should default to now", m.ReceivedAt)
}

func TestInsert_IDsStrictlyIncrease(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.Insert(ctx, "n", "e@example.com", "m")
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, n)
}

func TestInsert_StoresValuesVerbatim(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, "  Grace  ", "not-an-email", "line one\nline two")
	require.NoError(t, err)

	m, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "  Grace  ", m.Name)
	require.Equal(t, "not-an-email", m.Email)
	require.Equal(t, "line one\nline two", m.Message)
}

func TestInsert_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Insert(ctx, "n", "e@example.com", "m"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, writers, n)
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), 42)
	require.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestOpen_BadPathFailsThenRecovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "messages.db")
	s := New(path)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	_, err := s.Insert(ctx, "Ada", "ada@example.com", "Hello")
	require.Error(t, err)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	id, err := s.Insert(ctx, "Ada", "ada@example.com", "Hello")
	require.NoError(t, err)
	require.EqualValues(t, 1, id)
}

func TestClose_NeverOpened(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
