package encoding

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tokgo/internal/pkg/tokgo/tokenizer"
	"tokgo/internal/pkg/tokgo/vocab"
)

var (
	ErrUnknownEncoding = errors.New("unknown encoding")
	ErrUnknownModel    = errors.New("unknown model")
)

// Spec describes a named encoding: the piece-split pattern, its special
// tokens, and where its mergeable rank file lives. PatStr and the
// special-token ids are part of the compatibility contract and must not
// be altered.
type Spec struct {
	Name          string
	PatStr        string
	RanksURL      string
	SpecialTokens map[string]int
	// ExpectedRanks is the known entry count of the rank file; 0 skips
	// the check. A mismatch is logged, not fatal, since upstream files
	// may gain entries.
	ExpectedRanks int
}

// New builds a fresh codec for the named encoding, fetching the rank
// file into cacheDir (DefaultCacheDir when empty) on first use.
func New(name, cacheDir string) (*tokenizer.Codec, error) {
	spec, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	path, err := vocab.Fetch(spec.RanksURL, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ranks for %s: %w", name, err)
	}

	ranks, err := vocab.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranks for %s: %w", name, err)
	}

	if spec.ExpectedRanks > 0 && len(ranks) != spec.ExpectedRanks {
		log.Warn().
			Str("encoding", name).
			Int("expected", spec.ExpectedRanks).
			Int("loaded", len(ranks)).
			Msg("Rank count differs from the known table size")
	}

	codec, err := tokenizer.New(spec.PatStr, ranks, &tokenizer.Options{
		SpecialTokens: spec.SpecialTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build codec for %s: %w", name, err)
	}
	return codec, nil
}
