package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokgo/internal/pkg/tokgo/tokenizer"
)

// getCodec builds the named encoding, skipping the test when the rank
// file can't be fetched (offline CI).
func getCodec(t *testing.T, name string) *tokenizer.Codec {
	t.Helper()
	codec, err := Get(name)
	if err != nil {
		t.Skipf("encoding %s unavailable: %v", name, err)
	}
	return codec
}

func TestCL100kKnownVectors(t *testing.T) {
	codec := getCodec(t, "cl100k_base")

	cases := []struct {
		input string
		want  []int
	}{
		{"Hello world", []int{9906, 1917}},
		{"Hello world!", []int{9906, 1917, 0}},
		{"", []int{}},
		{"<|endoftext|>", []int{100257}},
		{"Hello <|endoftext|>", []int{9906, 220, 100257}},
	}
	for _, tc := range cases {
		ids, err := codec.Encode(tc.input)
		require.NoError(t, err, "encode %q", tc.input)
		assert.Equal(t, tc.want, ids, "encode %q", tc.input)
	}
}

func TestCL100kDecodeKnownVector(t *testing.T) {
	codec := getCodec(t, "cl100k_base")

	got, err := codec.Decode([]int{9906, 1917})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
}

func TestRoundTripAllEncodings(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog.",
		"  indented\n\ttabbed\r\nwindows line",
		"unicode: héllo wörld ☃ 日本語 🙂",
		"numbers 1234567890 and   spaces",
		"don't can't won't I'll you've",
	}

	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			codec := getCodec(t, name)
			for _, input := range inputs {
				ids, err := codec.Encode(input)
				require.NoError(t, err, "encode %q", input)

				got, err := codec.Decode(ids)
				require.NoError(t, err, "decode %q", input)
				assert.Equal(t, input, got)
			}
		})
	}
}

func TestEndOfTextPerEncoding(t *testing.T) {
	cases := map[string]int{
		"cl100k_base": 100257,
		"p50k_base":   50256,
		"r50k_base":   50256,
		"o200k_base":  199999,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			codec := getCodec(t, name)
			ids, err := codec.Encode("<|endoftext|>")
			require.NoError(t, err)
			assert.Equal(t, []int{want}, ids)
		})
	}
}

func TestGetCachesCodec(t *testing.T) {
	first := getCodec(t, "cl100k_base")
	second, err := Get("cl100k_base")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
