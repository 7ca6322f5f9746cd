package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"tokgo/internal/pkg/tokgo/config"
	"tokgo/internal/pkg/tokgo/encoding"
	"tokgo/internal/pkg/tokgo/tokenizer"
)

func main() {
	fmt.Fprintf(os.Stderr, "tokgo %s\n", Version)

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadAndParse()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse configuration")
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup logging")
	}

	if cfg.ListEncodings {
		for _, name := range encoding.List() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		return
	}

	name := cfg.Encoding
	if cfg.Model != "" {
		name, err = encoding.ForModel(cfg.Model)
		if err != nil {
			log.Fatal().Err(err).Str("model", cfg.Model).Msg("Failed to resolve model")
		}
		log.Debug().Str("model", cfg.Model).Str("encoding", name).Msg("Resolved model")
	}

	log.Debug().
		Str("encoding", name).
		Bool("count", cfg.Count).
		Bool("no_special", cfg.NoSpecial).
		Msg("Configuration loaded")

	log.Info().Str("encoding", name).Msg("Loading encoding...")
	startTime := time.Now()
	codec, err := encoding.New(name, cfg.CacheDir)
	if err != nil {
		log.Fatal().Err(err).Str("encoding", name).Msg("Failed to load encoding")
	}
	log.Debug().Dur("elapsed", time.Since(startTime)).Msg("Encoding loaded")

	if cfg.Decode != "" {
		text, err := decodeIDs(codec, cfg.Decode)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to decode")
		}
		fmt.Println(text)
		return
	}

	text := cfg.Text
	if cfg.NFC {
		text = norm.NFC.String(text)
	}

	var ids []int
	if cfg.NoSpecial {
		ids, err = codec.EncodeOrdinary(text)
	} else {
		ids, err = codec.Encode(text)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode")
	}

	if cfg.Count {
		fmt.Println(len(ids))
		return
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	fmt.Println(strings.Join(out, " "))
}

func decodeIDs(codec *tokenizer.Codec, input string) (string, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	ids := make([]int, 0, len(fields))
	for _, field := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			return "", fmt.Errorf("bad token id %q: %w", field, err)
		}
		ids = append(ids, id)
	}
	return codec.Decode(ids)
}

func setupLogging(cfg *config.Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	return nil
}
