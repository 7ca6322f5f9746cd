package tokenizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// segment is one slice of the input: either a literal special trigger
// or the text between triggers.
type segment struct {
	value   string
	special bool
}

// specialSplitter carves special-token triggers out of raw input,
// leaving the surrounding text untouched.
type specialSplitter struct {
	re *regexp.Regexp
}

func newSpecialSplitter(specials map[string]int, matching SpecialMatching) (*specialSplitter, error) {
	triggers := make([]string, 0, len(specials))
	for trigger := range specials {
		triggers = append(triggers, trigger)
	}

	// For longest matching the alternation is ordered by descending byte
	// length so the engine's first-alternative-wins rule picks the
	// longest trigger. Parity keeps the given order.
	if matching == MatchLongest {
		sort.Slice(triggers, func(i, j int) bool {
			if len(triggers[i]) != len(triggers[j]) {
				return len(triggers[i]) > len(triggers[j])
			}
			return triggers[i] < triggers[j]
		})
	}

	escaped := make([]string, len(triggers))
	for i, trigger := range triggers {
		escaped[i] = regexp.QuoteMeta(trigger)
	}
	re, err := regexp.Compile(strings.Join(escaped, "|"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpecialPattern, err)
	}
	return &specialSplitter{re: re}, nil
}

// split returns the ordered interleaving of text and special segments.
// Text segments are never empty; the whole input is covered.
func (s *specialSplitter) split(text string) []segment {
	segs := make([]segment, 0, 2)
	for len(text) > 0 {
		loc := s.re.FindStringIndex(text)
		if loc == nil {
			segs = append(segs, segment{value: text})
			break
		}
		if loc[0] > 0 {
			segs = append(segs, segment{value: text[:loc[0]]})
		}
		segs = append(segs, segment{value: text[loc[0]:loc[1]], special: true})
		text = text[loc[1]:]
	}
	return segs
}
