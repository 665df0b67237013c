package library

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = []Backend{BackendBolt, BackendLevelDB, BackendBadger}

func openTemp(t *testing.T, backend Backend) (*Library, string) {
	t.Helper()

	path := t.TempDir()
	if backend == BackendBolt {
		path = filepath.Join(path, "library.db")
	}

	l, err := Open(path, Options{Backend: backend, NoSync: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, path
}

func export(t *testing.T, origin define.Origin) []byte {
	t.Helper()

	doc := structure.New(define.Size{2, 1, 2}, origin)
	require.NoError(t, doc.SetBlockPalette([]define.BlockDefinition{{Name: "minecraft:stone"}}))
	require.NoError(t, doc.SetBlockIndices(0, define.BlockMatrix{0, -1, 0, -1}))

	data, err := structure.Export(doc)
	require.NoError(t, err)
	return data
}

func forEachBackend(t *testing.T, fn func(t *testing.T, backend Backend)) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			fn(t, backend)
		})
	}
}

func TestPutGetDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend Backend) {
		l, _ := openTemp(t, backend)
		house := export(t, define.Origin{1, 2, 3})
		tower := export(t, define.Origin{4, 5, 6})

		entry, err := l.Put("house", house)
		require.NoError(t, err)
		assert.Equal(t, "house", entry.Name)
		assert.Equal(t, len(house), entry.Size)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.WithinDuration(t, time.Now(), entry.StoredAt, time.Minute)

		_, err = l.Put("tower", tower)
		require.NoError(t, err)

		got, err := l.Get("house")
		require.NoError(t, err)
		assert.Equal(t, house, got)

		has, err := l.Has("tower")
		require.NoError(t, err)
		assert.True(t, has)

		count, err := l.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		names, err := l.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"house", "tower"}, names)

		require.NoError(t, l.Delete("house"))
		_, err = l.Get("house")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, l.Delete("house"), ErrNotFound)

		count, err = l.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestOverwriteKeepsID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend Backend) {
		l, _ := openTemp(t, backend)

		first, err := l.Put("house", export(t, define.Origin{}))
		require.NoError(t, err)

		newer := export(t, define.Origin{9, 9, 9})
		second, err := l.Put("house", newer)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		stat, err := l.Stat("house")
		require.NoError(t, err)
		assert.Equal(t, second, stat)

		count, err := l.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		doc, err := l.Document("house")
		require.NoError(t, err)
		origin, err := doc.WorldOrigin()
		require.NoError(t, err)
		assert.Equal(t, define.Origin{9, 9, 9}, origin)
	})
}

func TestPutRejectsBadInput(t *testing.T) {
	l, _ := openTemp(t, BackendBolt)

	_, err := l.Put("", export(t, define.Origin{}))
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = l.Put("garbage", []byte("not a structure"))
	assert.Error(t, err)

	doc := structure.New(define.Size{2, 1, 2}, define.Origin{})
	// Palette index 3 with an empty palette.
	require.NoError(t, doc.SetBlockIndices(0, define.BlockMatrix{3, -1, -1, -1}))
	data, err := structure.Export(doc)
	require.NoError(t, err)
	_, err = l.Put("broken", data)
	assert.ErrorIs(t, err, define.ErrPaletteIndexOutOfRange)

	count, err := l.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCorruptedRecord(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend Backend) {
		l, _ := openTemp(t, backend)

		require.NoError(t, l.db.Put(structureKey("junk"), []byte("junk")))
		_, err := l.Get("junk")
		assert.ErrorIs(t, err, ErrCorrupted)
		_, err = l.Stat("junk")
		assert.ErrorIs(t, err, ErrCorrupted)
		_, err = l.List()
		assert.ErrorIs(t, err, ErrCorrupted)

		_, err = l.Put("house", export(t, define.Origin{}))
		require.NoError(t, err)
		record, err := l.db.Get(structureKey("house"))
		require.NoError(t, err)
		record[len(record)-1] ^= 0xff
		require.NoError(t, l.db.Put(structureKey("house"), record))

		_, err = l.Get("house")
		assert.ErrorIs(t, err, ErrCorrupted)
		// The header is still fine.
		_, err = l.Stat("house")
		assert.NoError(t, err)
	})
}

func TestReopen(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend Backend) {
		l, path := openTemp(t, backend)
		house := export(t, define.Origin{1, 1, 1})

		entry, err := l.Put("house", house)
		require.NoError(t, err)
		require.NoError(t, l.Close())

		l, err = Open(path, Options{Backend: backend})
		require.NoError(t, err)
		defer l.Close()

		stat, err := l.Stat("house")
		require.NoError(t, err)
		assert.Equal(t, entry.ID, stat.ID)

		got, err := l.Get("house")
		require.NoError(t, err)
		assert.Equal(t, house, got)
	})
}

func TestConcurrentEdit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend Backend) {
		l, _ := openTemp(t, backend)
		_, err := l.Put("house", export(t, define.Origin{}))
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 5 {
					err := l.Edit("house", func(doc *structure.Document) error {
						origin, err := doc.WorldOrigin()
						if err != nil {
							return err
						}
						origin[0]++
						return doc.SetWorldOrigin(origin)
					})
					assert.NoError(t, err)
				}
			}()
		}
		wg.Wait()

		doc, err := l.Document("house")
		require.NoError(t, err)
		origin, err := doc.WorldOrigin()
		require.NoError(t, err)
		assert.Equal(t, int32(40), origin[0])
	})
}

func TestEditFailureStoresNothing(t *testing.T) {
	l, _ := openTemp(t, BackendBolt)
	house := export(t, define.Origin{})
	_, err := l.Put("house", house)
	require.NoError(t, err)

	errStop := errors.New("stop")
	err = l.Edit("house", func(doc *structure.Document) error {
		_ = doc.SetWorldOrigin(define.Origin{7, 7, 7})
		return errStop
	})
	assert.ErrorIs(t, err, errStop)

	err = l.Edit("house", func(doc *structure.Document) error {
		return doc.SetBlockPalette(nil)
	})
	assert.ErrorIs(t, err, define.ErrPaletteIndexOutOfRange)

	got, err := l.Get("house")
	require.NoError(t, err)
	assert.Equal(t, house, got)

	err = l.Edit("tower", func(*structure.Document) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloseWaitsForLease(t *testing.T) {
	l, _ := openTemp(t, BackendBolt)
	_, err := l.Put("house", export(t, define.Origin{}))
	require.NoError(t, err)

	release, err := l.Require("house")
	require.NoError(t, err)

	closed := make(chan error)
	go func() { closed <- l.Close() }()

	select {
	case <-closed:
		t.Fatal("Close returned while a lease was held")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	require.NoError(t, <-closed)

	_, err = l.Require("house")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = l.Get("house")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = l.Put("house", export(t, define.Origin{}))
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, l.Close())
}

func TestLeaseWaitersFailOnClose(t *testing.T) {
	l, _ := openTemp(t, BackendBolt)

	release, err := l.Require("house")
	require.NoError(t, err)

	waiter := make(chan error)
	go func() {
		release, err := l.Require("house")
		if err == nil {
			release()
		}
		waiter <- err
	}()

	closed := make(chan error)
	go func() { closed <- l.Close() }()

	// The waiter either gets the lease before Close began or
	// fails with ErrClosed. It never hangs.
	release()
	require.NoError(t, <-closed)
	if err := <-waiter; err != nil {
		assert.ErrorIs(t, err, ErrClosed)
	}
}

func TestConcurrentClose(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend Backend) {
		l, _ := openTemp(t, backend)
		_, err := l.Put("house", export(t, define.Origin{}))
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, l.Close())
			}()
		}
		wg.Wait()

		_, err = l.Put("tower", export(t, define.Origin{}))
		assert.ErrorIs(t, err, ErrClosed)
		assert.ErrorIs(t, l.Delete("house"), ErrClosed)
		_, err = l.Has("house")
		assert.ErrorIs(t, err, ErrClosed)
		_, err = l.Count()
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestMalformedCount(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend Backend) {
		l, _ := openTemp(t, backend)
		_, err := l.Put("house", export(t, define.Origin{}))
		require.NoError(t, err)

		require.NoError(t, l.db.Put([]byte(KeyStructureCount), []byte{1, 0}))

		_, err = l.Count()
		assert.ErrorIs(t, err, ErrCorrupted)
		_, err = l.Put("tower", export(t, define.Origin{}))
		assert.ErrorIs(t, err, ErrCorrupted)
		assert.ErrorIs(t, l.Delete("house"), ErrCorrupted)

		// The failed transactions left the records alone.
		has, err := l.Has("house")
		require.NoError(t, err)
		assert.True(t, has)
		has, err = l.Has("tower")
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestCountNeverGoesNegative(t *testing.T) {
	l, _ := openTemp(t, BackendBolt)
	_, err := l.Put("house", export(t, define.Origin{}))
	require.NoError(t, err)

	require.NoError(t, l.db.Put([]byte(KeyStructureCount), []byte{0, 0, 0, 0}))
	assert.ErrorIs(t, l.Delete("house"), ErrCorrupted)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(t.TempDir(), Options{Backend: "sqlite"})
	assert.Error(t, err)
}
