package encoding

import (
	"fmt"
	"strings"
)

// modelEncodings maps exact model names to their encoding.
var modelEncodings = map[string]string{
	"text-embedding-ada-002": "cl100k_base",
	"text-davinci-003":       "p50k_base",
	"text-davinci-002":       "p50k_base",
	"text-davinci-001":       "r50k_base",
	"davinci":                "r50k_base",
	"curie":                  "r50k_base",
	"babbage":                "r50k_base",
	"ada":                    "r50k_base",
}

// modelPrefixEncodings pairs a model-name prefix with an encoding. Order
// matters: gpt-4o must be checked before gpt-4.
var modelPrefixEncodings = []struct {
	prefix   string
	encoding string
}{
	{"gpt-4o", "o200k_base"},
	{"gpt-4", "cl100k_base"},
	{"gpt-3.5-turbo", "cl100k_base"},
	{"text-embedding-3-", "cl100k_base"},
	{"code-", "p50k_base"},
}

// ForModel resolves a model name to its encoding name.
func ForModel(model string) (string, error) {
	if name, ok := modelEncodings[model]; ok {
		return name, nil
	}
	for _, entry := range modelPrefixEncodings {
		if strings.HasPrefix(model, entry.prefix) {
			return entry.encoding, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, model)
}
