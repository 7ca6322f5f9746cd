package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Text          string `mapstructure:"text"`
	Encoding      string `mapstructure:"encoding"`
	Model         string `mapstructure:"model"`
	Decode        string `mapstructure:"decode"`
	Count         bool   `mapstructure:"count"`
	NoSpecial     bool   `mapstructure:"no_special"`
	NFC           bool   `mapstructure:"nfc"`
	CacheDir      string `mapstructure:"cache_dir"`
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	ListEncodings bool   `mapstructure:"list_encodings"`
}

func LoadAndParse() (*Config, error) {
	viper.SetDefault("encoding", "cl100k_base")
	viper.SetDefault("model", "")
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")

	flagSet := pflag.NewFlagSet("tokgo", pflag.ContinueOnError)
	configFile := flagSet.StringP("config", "c", "", "Path to config file")
	flagSet.StringP("text", "t", "", "Text to tokenize (use '-' to read from stdin)")
	flagSet.StringP("file", "f", "", "Read text from file")
	flagSet.StringP("encoding", "e", "", "Encoding name (cl100k_base, p50k_base, r50k_base, o200k_base)")
	flagSet.StringP("model", "m", "", "Model name; resolved to an encoding (overrides --encoding)")
	flagSet.StringP("decode", "d", "", "Decode a comma- or space-separated token id list instead of encoding")
	flagSet.Bool("count", false, "Print the token count instead of the ids")
	flagSet.Bool("no-special", false, "Treat special-token triggers as ordinary text")
	flagSet.Bool("nfc", false, "Apply NFC normalization to the input before encoding")
	flagSet.String("cache-dir", "", "Directory for downloaded rank files")
	flagSet.StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	flagSet.String("log-file", "", "Log file path")
	flagSet.Bool("list-encodings", false, "List available encodings and exit")
	helpFlag := flagSet.BoolP("help", "h", false, "Show help message")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *helpFlag {
		fmt.Fprintf(os.Stderr, "Usage: tokgo [options] [text]\n\nOptions:\n")
		flagSet.PrintDefaults()
		os.Exit(0)
	}

	bindings := map[string]string{
		"text":           "text",
		"encoding":       "encoding",
		"model":          "model",
		"decode":         "decode",
		"count":          "count",
		"no_special":     "no-special",
		"nfc":            "nfc",
		"cache_dir":      "cache-dir",
		"log_level":      "log-level",
		"log_file":       "log-file",
		"list_encodings": "list-encodings",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flagSet.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	if *configFile != "" {
		viper.SetConfigFile(*configFile)
	} else {
		viper.SetConfigName("tokgo.cfg")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("configs")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tokgo"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetEnvPrefix("TOKGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Text is taken verbatim: trimming would change the token stream.
	textFile, _ := flagSet.GetString("file")
	if textFile != "" {
		content, err := os.ReadFile(textFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		cfg.Text = string(content)
	} else if cfg.Text == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		cfg.Text = string(content)
	} else if cfg.Text == "" {
		args := flagSet.Args()
		if len(args) > 0 {
			cfg.Text = strings.Join(args, " ")
		}
	}

	if cfg.Text == "" && cfg.Decode == "" && !cfg.ListEncodings {
		return nil, fmt.Errorf("text is required (use -t, -f, or provide as argument)")
	}

	return &cfg, nil
}
