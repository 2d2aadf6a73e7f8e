package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_lru(t *testing.T) {
	t.Run("it evicts only when bytes limit is reached and new key is added", func(t *testing.T) {
		var evictedKeys []string
		var evictedValues [][]byte

		onEvict := func(k string, v []byte) {
			evictedKeys = append(evictedKeys, k)
			evictedValues = append(evictedValues, v)
		}

		vA := []byte(`a1234567890abcdefgh`)
		vB := []byte(`b1234567890abcdefgh`)
		vC := []byte(`c1234567890abcdefgh`)
		vD := []byte(`d1234567890abcdefgh`)

		lru := newLruShard(20*4, onEvict)
		assert.False(t, lru.add("a", vA))
		assert.False(t, lru.add("b", vB))
		assert.False(t, lru.add("c", vC))
		assert.False(t, lru.add("d", vD))
		assert.Empty(t, evictedKeys)

		// touch everything except c, making it the eviction candidate
		for k, want := range map[string][]byte{"a": vA, "b": vB, "d": vD} {
			v, ok := lru.get(k)
			require.True(t, ok)
			require.Exactly(t, want, v)
		}

		assert.True(t, lru.add("e", []byte(`e1234567890abcdefgh`)))
		require.Len(t, evictedKeys, 1)
		assert.Equal(t, "c", evictedKeys[0])
		assert.Exactly(t, vC, evictedValues[0])

		v, ok := lru.get("c")
		require.False(t, ok)
		require.Nil(t, v)
		assert.Equal(t, 4, lru.len())
	})

	t.Run("replacing a key reuses its bytes", func(t *testing.T) {
		evicted := 0
		lru := newLruShard(10, func(string, []byte) { evicted++ })

		assert.False(t, lru.add("a", []byte("12345")))
		assert.False(t, lru.add("b", []byte("12345")))
		assert.False(t, lru.add("a", []byte("abcde")))

		assert.Equal(t, 0, evicted)
		assert.Equal(t, uint64(10), lru.bytes())
		assert.Equal(t, []string{"a", "b"}, lru.keys())

		v, ok := lru.get("a")
		require.True(t, ok)
		assert.Equal(t, []byte("abcde"), v)
	})

	t.Run("remove and purge", func(t *testing.T) {
		lru := newLruShard(100, nil)
		lru.add("a", []byte("1"))
		lru.add("b", []byte("22"))

		v, ok := lru.remove("b")
		require.True(t, ok)
		assert.Equal(t, []byte("22"), v)
		assert.Equal(t, uint64(1), lru.bytes())

		_, ok = lru.remove("b")
		assert.False(t, ok)

		lru.purge()
		assert.Equal(t, 0, lru.len())
		assert.Equal(t, uint64(0), lru.bytes())
	})
}
