package encoding

import (
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHasAllEncodings(t *testing.T) {
	assert.Equal(t, []string{"cl100k_base", "o200k_base", "p50k_base", "r50k_base"}, List())

	for _, name := range List() {
		spec, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, spec.Name)
		assert.NotEmpty(t, spec.PatStr)
		assert.NotEmpty(t, spec.RanksURL)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("q75k_base")
	require.ErrorIs(t, err, ErrUnknownEncoding)
	assert.False(t, IsRegistered("q75k_base"))
}

func TestPatternsCompile(t *testing.T) {
	for _, name := range List() {
		spec, err := Lookup(name)
		require.NoError(t, err)
		_, err = regexp2.Compile(spec.PatStr, regexp2.None)
		require.NoError(t, err, "pattern for %s", name)
	}
}

func TestSpecialTokenTables(t *testing.T) {
	cl100k, err := Lookup("cl100k_base")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"<|endoftext|>":   100257,
		"<|fim_prefix|>":  100258,
		"<|fim_middle|>":  100259,
		"<|fim_suffix|>":  100260,
		"<|endofprompt|>": 100276,
	}, cl100k.SpecialTokens)

	for _, name := range []string{"p50k_base", "r50k_base"} {
		spec, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"<|endoftext|>": 50256}, spec.SpecialTokens, name)
	}

	o200k, err := Lookup("o200k_base")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"<|endoftext|>": 199999}, o200k.SpecialTokens)
}

func TestForModel(t *testing.T) {
	cases := []struct {
		model string
		want  string
	}{
		{"gpt-4o", "o200k_base"},
		{"gpt-4o-mini", "o200k_base"},
		{"gpt-4", "cl100k_base"},
		{"gpt-4-0613", "cl100k_base"},
		{"gpt-3.5-turbo", "cl100k_base"},
		{"gpt-3.5-turbo-16k", "cl100k_base"},
		{"text-embedding-ada-002", "cl100k_base"},
		{"text-embedding-3-small", "cl100k_base"},
		{"text-embedding-3-large", "cl100k_base"},
		{"text-davinci-003", "p50k_base"},
		{"text-davinci-002", "p50k_base"},
		{"code-davinci-002", "p50k_base"},
		{"code-cushman-001", "p50k_base"},
		{"text-davinci-001", "r50k_base"},
		{"davinci", "r50k_base"},
		{"curie", "r50k_base"},
		{"babbage", "r50k_base"},
		{"ada", "r50k_base"},
	}
	for _, tc := range cases {
		got, err := ForModel(tc.model)
		require.NoError(t, err, tc.model)
		assert.Equal(t, tc.want, got, tc.model)
	}
}

func TestForModelUnknown(t *testing.T) {
	_, err := ForModel("claude-3")
	require.ErrorIs(t, err, ErrUnknownModel)
}
