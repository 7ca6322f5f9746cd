package tokenizer

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// SpecialMatching selects how overlapping special-token triggers are
// resolved by the splitter.
type SpecialMatching string

const (
	// MatchParity compiles triggers in their given order and lets the
	// regex engine's first-alternative-wins rule decide. Nondeterministic
	// when one trigger is a prefix of another.
	MatchParity SpecialMatching = "parity"
	// MatchLongest prefers the longest trigger at a position, ties broken
	// lexicographically.
	MatchLongest SpecialMatching = "longest"
)

// Options carries the optional construction inputs for a Codec.
type Options struct {
	// SpecialTokens maps trigger strings (e.g. "<|endoftext|>") to
	// reserved token ids.
	SpecialTokens map[string]int
	// SpecialMatching defaults to MatchParity when empty.
	SpecialMatching SpecialMatching
}

// Codec is an immutable encoder/decoder for one BPE encoding. It is safe
// for concurrent use: all fields are read-only after New returns.
type Codec struct {
	pattern      *regexp2.Regexp
	ranks        map[string]int
	decoder      map[int][]byte
	specials     map[string]int
	specialsByID map[int]string
	matching     SpecialMatching
	splitter     *specialSplitter // nil when there are no special tokens
}

// New builds a Codec from a piece-split pattern and a mergeable rank
// table. The rank table must contain an entry for every single byte
// 0x00-0xFF and its values must be distinct non-negative integers.
func New(patStr string, ranks map[string]int, opts *Options) (*Codec, error) {
	pattern, err := regexp2.Compile(patStr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	if err := validateRanks(ranks); err != nil {
		return nil, err
	}

	var specials map[string]int
	matching := MatchParity
	if opts != nil {
		specials = opts.SpecialTokens
		if opts.SpecialMatching != "" {
			matching = opts.SpecialMatching
		}
	}
	if matching != MatchParity && matching != MatchLongest {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpecialMatching, matching)
	}
	if err := validateSpecials(specials); err != nil {
		return nil, err
	}

	c := &Codec{
		pattern:      pattern,
		ranks:        ranks,
		decoder:      make(map[int][]byte, len(ranks)),
		specials:     specials,
		specialsByID: make(map[int]string, len(specials)),
		matching:     matching,
	}

	for tok, id := range ranks {
		c.decoder[id] = []byte(tok)
	}
	for trigger, id := range specials {
		c.specialsByID[id] = trigger
	}

	if len(specials) > 0 {
		splitter, err := newSpecialSplitter(specials, matching)
		if err != nil {
			return nil, err
		}
		c.splitter = splitter
	}

	return c, nil
}

func validateRanks(ranks map[string]int) error {
	if len(ranks) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidRanks)
	}
	seen := make(map[int]string, len(ranks))
	for tok, id := range ranks {
		if tok == "" {
			return fmt.Errorf("%w: empty token bytes", ErrInvalidRanks)
		}
		if id < 0 {
			return fmt.Errorf("%w: negative rank %d for %q", ErrInvalidRanks, id, tok)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("%w: rank %d assigned to both %q and %q", ErrInvalidRanks, id, prev, tok)
		}
		seen[id] = tok
	}
	for b := 0; b < 256; b++ {
		if _, ok := ranks[string([]byte{byte(b)})]; !ok {
			return fmt.Errorf("%w: missing single-byte entry 0x%02x", ErrInvalidRanks, b)
		}
	}
	return nil
}

func validateSpecials(specials map[string]int) error {
	for trigger, id := range specials {
		if trigger == "" {
			return fmt.Errorf("%w: empty trigger", ErrInvalidSpecials)
		}
		if id < 0 {
			return fmt.Errorf("%w: negative id %d for %q", ErrInvalidSpecials, id, trigger)
		}
	}
	return nil
}

// Encode tokenizes text, mapping special-token triggers to their
// reserved ids. It returns ids strictly in text order and stops at the
// first error with no partial output.
func (c *Codec) Encode(text string) ([]int, error) {
	return c.encode(text, true)
}

// EncodeOrdinary tokenizes text with special handling disabled: trigger
// strings pass through the piece splitter and BPE like any other bytes.
func (c *Codec) EncodeOrdinary(text string) ([]int, error) {
	return c.encode(text, false)
}

// Count reports how many tokens Encode would produce for text.
func (c *Codec) Count(text string) (int, error) {
	ids, err := c.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (c *Codec) encode(text string, allowSpecial bool) ([]int, error) {
	ids := make([]int, 0, len(text)/3+1)

	if !allowSpecial || c.splitter == nil {
		return c.encodeText(text, ids)
	}

	for _, seg := range c.splitter.split(text) {
		if seg.special {
			id, ok := c.specials[seg.value]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownSpecialToken, seg.value)
			}
			ids = append(ids, id)
			continue
		}
		var err error
		ids, err = c.encodeText(seg.value, ids)
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// encodeText appends the token ids for one text segment to ids.
func (c *Codec) encodeText(text string, ids []int) ([]int, error) {
	runes := []rune(text)
	m, _ := c.pattern.FindRunesMatch(runes)
	for m != nil {
		toks, err := c.bytePairEncode([]byte(m.String()))
		if err != nil {
			return nil, err
		}
		ids = append(ids, toks...)
		m, _ = c.pattern.FindNextMatch(m)
	}
	return ids, nil
}

// Decode maps ids back to text. Special ids yield their trigger string,
// ordinary ids their rank-table bytes. The concatenated bytes are
// interpreted as UTF-8 with each maximal invalid run replaced by a
// single U+FFFD.
func (c *Codec) Decode(ids []int) (string, error) {
	buf := make([]byte, 0, len(ids)*3)
	for _, id := range ids {
		if id < 0 {
			return "", fmt.Errorf("%w: %d", ErrInvalidTokenID, id)
		}
		if trigger, ok := c.specialsByID[id]; ok {
			buf = append(buf, trigger...)
			continue
		}
		tok, ok := c.decoder[id]
		if !ok {
			return "", fmt.Errorf("%w: %d", ErrUnknownTokenID, id)
		}
		buf = append(buf, tok...)
	}
	return strings.ToValidUTF8(string(buf), "�"), nil
}

// SpecialTokens returns the trigger strings this codec recognizes.
func (c *Codec) SpecialTokens() []string {
	out := make([]string, 0, len(c.specials))
	for trigger := range c.specials {
		out = append(out, trigger)
	}
	return out
}
