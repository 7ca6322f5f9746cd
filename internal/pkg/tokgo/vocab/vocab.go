package vocab

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseRanks reads the .tiktoken rank-file format: one
// "<base64 token> <rank>" entry per line. Lines that don't parse are
// skipped; duplicate tokens resolve to the last entry.
func ParseRanks(r io.Reader) (map[string]int, error) {
	ranks := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		encoded, rankStr, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		token, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil || len(token) == 0 {
			continue
		}
		rank, err := strconv.Atoi(rankStr)
		if err != nil || rank < 0 {
			continue
		}
		ranks[string(token)] = rank
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rank file: %w", err)
	}

	return ranks, nil
}

// LoadFile parses the rank file at path.
func LoadFile(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rank file: %w", err)
	}
	defer f.Close()

	ranks, err := ParseRanks(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ranks, nil
}
