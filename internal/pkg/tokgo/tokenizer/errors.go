package tokenizer

import "errors"

// One sentinel per failure kind so callers can switch on errors.Is.
var (
	ErrInvalidPattern         = errors.New("piece pattern failed to compile")
	ErrInvalidRanks           = errors.New("invalid mergeable ranks")
	ErrInvalidSpecials        = errors.New("invalid special tokens")
	ErrInvalidSpecialMatching = errors.New("invalid special token matching mode")
	ErrInvalidSpecialPattern  = errors.New("special token pattern failed to compile")
	ErrUnknownSpecialToken    = errors.New("unknown special token")
	ErrMissingRank            = errors.New("no rank for merged bytes")
	ErrInvalidTokenID         = errors.New("invalid token id")
	ErrUnknownTokenID         = errors.New("unknown token id")
)
