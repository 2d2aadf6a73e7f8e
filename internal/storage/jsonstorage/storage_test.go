package jsonstorage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/denismitr/roster/internal/data"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStorage_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	s := New(path)

	t.Run("it can write a snapshot and read it back", func(t *testing.T) {
		snap := data.Snapshot{
			Entries: []data.Entry{
				{Key: "shift:1", Value: []byte(`{"id":1,"location":"Warehouse"}`)},
				{Key: "user:E100", Value: []byte(`{"id":"E100","name":"Ann"}`)},
			},
			Seq: data.Sequences{"shift": 1},
		}

		require.NoError(t, s.Write(snap))
		assert.True(t, s.Exists())
		assert.NoFileExists(t, s.tmpPath)

		var dst data.Snapshot
		require.NoError(t, s.Read(&dst))
		assert.Equal(t, 2, dst.Len())
		assert.Equal(t, "user:E100", dst.Entries[1].Key)
		assert.JSONEq(t, `{"id":1,"location":"Warehouse"}`, string(dst.Entries[0].Value))
		assert.Equal(t, uint64(1), dst.Seq["shift"])
	})

	t.Run("it replaces previous contents", func(t *testing.T) {
		require.NoError(t, s.Write(data.Snapshot{Seq: data.Sequences{}}))

		var dst data.Snapshot
		require.NoError(t, s.Read(&dst))
		assert.Equal(t, 0, dst.Len())
	})
}

func TestJSONStorage_Read(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		s := New(filepath.Join(dir, "missing.json"))
		assert.False(t, s.Exists())
		assert.Error(t, s.Read(&data.Snapshot{}))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0666))

		var dst data.Snapshot
		require.NoError(t, New(path).Read(&dst))
		assert.Equal(t, 0, dst.Len())
	})

	t.Run("corrupted file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupted.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"entries":[`), 0666))

		err := New(path).Read(&data.Snapshot{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSnapshotCorrupted))
	})
}
