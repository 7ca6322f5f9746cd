package vocab

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultCacheDir returns the rank-file cache directory: TOKGO_CACHE_DIR
// when set, otherwise a tokgo subdirectory of the user cache dir.
func DefaultCacheDir() string {
	if dir := os.Getenv("TOKGO_CACHE_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tokgo")
	}
	return filepath.Join(base, "tokgo")
}

// Fetch downloads the rank file at url into cacheDir and returns the
// local path, reusing a previously downloaded copy when present. An
// empty cacheDir means DefaultCacheDir. The file is written to a temp
// name and renamed so a failed download never leaves a partial cache
// entry.
func Fetch(url, cacheDir string) (string, error) {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}

	sum := sha256.Sum256([]byte(url))
	dest := filepath.Join(cacheDir, hex.EncodeToString(sum[:])+".tiktoken")

	if _, err := os.Stat(dest); err == nil {
		log.Debug().Str("url", url).Str("path", dest).Msg("Rank file already cached")
		return dest, nil
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir %s: %w", cacheDir, err)
	}

	log.Info().Str("url", url).Msg("Downloading rank file...")
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(cacheDir, ".tokgo-download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if n == 0 {
		return "", fmt.Errorf("download %s: got 0 bytes", url)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move rank file into cache: %w", err)
	}

	log.Debug().Str("path", dest).Int64("bytes", n).Msg("Rank file saved")
	return dest, nil
}
