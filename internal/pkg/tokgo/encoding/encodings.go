package encoding

// Reserved token ids. These must exactly match the upstream tiktoken
// tables.
const (
	cl100kEndOfText   = 100257
	cl100kFimPrefix   = 100258
	cl100kFimMiddle   = 100259
	cl100kFimSuffix   = 100260
	cl100kEndOfPrompt = 100276

	gpt2EndOfText = 50256

	o200kEndOfText = 199999
)

// Piece-split patterns, verbatim from OpenAI's tiktoken. The
// (?!\S) lookahead keeps a trailing-whitespace run from swallowing the
// space that belongs to the next word.
const (
	gpt2Pat   = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`
	cl100kPat = `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`
	o200kPat  = `[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]*[\p{Ll}\p{Lm}\p{Lo}\p{M}]+(?i:'s|'t|'re|'ve|'m|'ll|'d)?` +
		`|[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]+[\p{Ll}\p{Lm}\p{Lo}\p{M}]*(?i:'s|'t|'re|'ve|'m|'ll|'d)?` +
		`|\p{N}{1,3}` +
		`| ?[^\s\p{L}\p{N}]+[\r\n/]*` +
		`|\s*[\r\n]+` +
		`|\s+(?!\S)` +
		`|\s+`
)

const ranksBaseURL = "https://openaipublic.blob.core.windows.net/encodings/"

func init() {
	Register(Spec{
		Name:   "r50k_base",
		PatStr: gpt2Pat,
		SpecialTokens: map[string]int{
			"<|endoftext|>": gpt2EndOfText,
		},
		RanksURL:      ranksBaseURL + "r50k_base.tiktoken",
		ExpectedRanks: 50256,
	})

	Register(Spec{
		Name:   "p50k_base",
		PatStr: gpt2Pat,
		SpecialTokens: map[string]int{
			"<|endoftext|>": gpt2EndOfText,
		},
		RanksURL:      ranksBaseURL + "p50k_base.tiktoken",
		ExpectedRanks: 50280,
	})

	Register(Spec{
		Name:   "cl100k_base",
		PatStr: cl100kPat,
		SpecialTokens: map[string]int{
			"<|endoftext|>":   cl100kEndOfText,
			"<|fim_prefix|>":  cl100kFimPrefix,
			"<|fim_middle|>":  cl100kFimMiddle,
			"<|fim_suffix|>":  cl100kFimSuffix,
			"<|endofprompt|>": cl100kEndOfPrompt,
		},
		RanksURL:      ranksBaseURL + "cl100k_base.tiktoken",
		ExpectedRanks: 100256,
	})

	// The o200k special set is intentionally minimal; further triggers
	// exist upstream but only <|endoftext|> is verified here.
	Register(Spec{
		Name:   "o200k_base",
		PatStr: o200kPat,
		SpecialTokens: map[string]int{
			"<|endoftext|>": o200kEndOfText,
		},
		RanksURL:      ranksBaseURL + "o200k_base.tiktoken",
		ExpectedRanks: 199998,
	})
}
