package storage

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gametime/go-constants-sdk/internal/sharedtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapperWithoutCacheReadsThrough(t *testing.T) {
	core := sharedtest.NewMockPersistentStore()
	w := NewPersistentStoreWrapper(core, 0, sharedtest.NewTestLoggers())

	_, found, err := w.Get("k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, w.Set("k", []byte("v")))
	data, found, err := w.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), data)
	assert.Equal(t, 2, core.Storage.GetCount())
}

func TestWrapperWithCacheReadsOnce(t *testing.T) {
	core := sharedtest.NewMockPersistentStore()
	core.Storage.Put("k", []byte("v"))
	w := NewPersistentStoreWrapper(core, time.Minute, sharedtest.NewTestLoggers())

	for i := 0; i < 3; i++ {
		data, found, err := w.Get("k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("v"), data)
	}
	assert.Equal(t, 1, core.Storage.GetCount())
}

func TestWrapperCachesAbsentValue(t *testing.T) {
	core := sharedtest.NewMockPersistentStore()
	w := NewPersistentStoreWrapper(core, -1, sharedtest.NewTestLoggers())

	_, found, _ := w.Get("k")
	assert.False(t, found)
	_, found, _ = w.Get("k")
	assert.False(t, found)
	assert.Equal(t, 1, core.Storage.GetCount())
}

func TestWrapperSetUpdatesCacheOnlyOnSuccess(t *testing.T) {
	core := sharedtest.NewMockPersistentStore()
	w := NewPersistentStoreWrapper(core, time.Minute, sharedtest.NewTestLoggers())

	require.NoError(t, w.Set("k", []byte("v1")))

	fakeError := errors.New("sorry")
	core.Storage.SetFakeError(fakeError)
	assert.Equal(t, fakeError, w.Set("k", []byte("v2")))

	core.Storage.SetFakeError(nil)
	data, found, err := w.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v1"), data)
}

func TestWrapperGetError(t *testing.T) {
	core := sharedtest.NewMockPersistentStore()
	fakeError := errors.New("sorry")
	core.Storage.SetFakeError(fakeError)
	w := NewPersistentStoreWrapper(core, time.Minute, sharedtest.NewTestLoggers())

	_, _, err := w.Get("k")
	assert.Equal(t, fakeError, err)
}

func TestWrapperCloseClosesCore(t *testing.T) {
	core := sharedtest.NewMockPersistentStore()
	w := NewPersistentStoreWrapper(core, time.Minute, sharedtest.NewTestLoggers())
	require.NoError(t, w.Close())
	assert.True(t, core.IsClosed())
}

type blockingStore struct {
	entered chan struct{}
	release chan struct{}
	gets    int32
}

func (s *blockingStore) Get(key string) ([]byte, bool, error) {
	atomic.AddInt32(&s.gets, 1)
	s.entered <- struct{}{}
	<-s.release
	return []byte("v"), true, nil
}

func (s *blockingStore) Set(key string, value []byte) error { return nil }

func (s *blockingStore) Close() error { return nil }

func TestWrapperCoalescesConcurrentReads(t *testing.T) {
	core := &blockingStore{entered: make(chan struct{}, 10), release: make(chan struct{})}
	w := NewPersistentStoreWrapper(core, 0, sharedtest.NewTestLoggers())

	var wg sync.WaitGroup
	start := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, found, err := w.Get("k")
			assert.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []byte("v"), data)
		}()
	}
	start()
	<-core.entered
	for i := 0; i < 4; i++ {
		start()
	}
	time.Sleep(time.Millisecond * 50)
	close(core.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&core.gets))
}
