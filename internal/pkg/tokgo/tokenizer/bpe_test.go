package tokenizer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, merges ...string) *Codec {
	t.Helper()
	c, err := New(gpt2Pat, testRanks(merges...), nil)
	require.NoError(t, err)
	return c
}

func TestBytePairEncodeShortCircuit(t *testing.T) {
	c := newTestCodec(t, "ab", "cd", "abcd")

	ids, err := c.bytePairEncode([]byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, []int{258}, ids)
}

func TestBytePairEncodeMergeOrder(t *testing.T) {
	// "ab" (256) merges before "cd" (257); the merged halves then join
	// as "abcd" (258), leaving the unmergeable "e".
	c := newTestCodec(t, "ab", "cd", "abcd")

	ids, err := c.bytePairEncode([]byte("abcde"))
	require.NoError(t, err)
	assert.Equal(t, []int{258, 'e'}, ids)
}

func TestBytePairEncodeLeftmostTie(t *testing.T) {
	// Every "aa" pair shares one rank; the leftmost pair must win, so
	// "aaa" leaves [aa, a] rather than [a, aa].
	c := newTestCodec(t, "aa")

	for _, engine := range []struct {
		name string
		run  func([]byte) ([]int, error)
	}{
		{"scan", c.mergeScan},
		{"heap", c.mergeHeap},
	} {
		t.Run(engine.name, func(t *testing.T) {
			ids, err := engine.run([]byte("aaa"))
			require.NoError(t, err)
			assert.Equal(t, []int{256, 'a'}, ids)

			ids, err = engine.run([]byte("aaaa"))
			require.NoError(t, err)
			assert.Equal(t, []int{256, 256}, ids)
		})
	}
}

func TestBytePairEncodeMissingRank(t *testing.T) {
	// A table without the single-byte entries can strand a part that has
	// no rank. Built by hand since New rejects such tables.
	c := &Codec{ranks: map[string]int{"b": 98}}

	_, err := c.mergeScan([]byte("ab"))
	require.ErrorIs(t, err, ErrMissingRank)

	_, err = c.mergeHeap([]byte("ab"))
	require.ErrorIs(t, err, ErrMissingRank)
}

// TestEngineEquivalence checks that the scan and heap merge loops agree
// on random inputs, short and long, over a merge-rich table.
func TestEngineEquivalence(t *testing.T) {
	c := newTestCodec(t,
		"aa", "ab", "ba", "bb", "aab", "abb", "aabb", "cc", "ccc",
		"  ", "a ", " a", "ee", "he", "ll", "lo", "hel", "hello",
	)

	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("aabbcce hlo")

	for _, size := range []int{1, 2, 7, 50, scanMax, scanMax + 1, 300, 1000} {
		for trial := 0; trial < 20; trial++ {
			piece := make([]byte, size)
			for i := range piece {
				piece[i] = alphabet[rng.Intn(len(alphabet))]
			}

			want, err := c.mergeScan(piece)
			require.NoError(t, err)
			got, err := c.mergeHeap(piece)
			require.NoError(t, err)
			require.Equal(t, want, got, "size=%d trial=%d piece=%q", size, trial, piece)
		}
	}
}

// TestBytePairEncodeReconstructs checks that every produced id maps back
// to bytes whose concatenation is exactly the input piece.
func TestBytePairEncodeReconstructs(t *testing.T) {
	c := newTestCodec(t, "aa", "ab", "abc", "bc", "ca", "cab")

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		piece := make([]byte, 1+rng.Intn(400))
		for i := range piece {
			piece[i] = "abc"[rng.Intn(3)]
		}

		ids, err := c.bytePairEncode(piece)
		require.NoError(t, err)

		var rebuilt []byte
		for _, id := range ids {
			tok, ok := c.decoder[id]
			require.True(t, ok, "id %d not in decoder", id)
			rebuilt = append(rebuilt, tok...)
		}
		require.Equal(t, piece, rebuilt)
	}
}
