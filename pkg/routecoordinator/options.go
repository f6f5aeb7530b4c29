package routecoordinator

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/constants"
	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/internal"
)

// Options configures a Manager. The zero value is usable.
type Options struct {
	Codec            string       `toml:"codec"`             // Canonical byte form: "json" (default) or "msgpack"
	Locale           string       `toml:"locale"`            // Default language for Localize, e.g. "en" or "id"
	LogLevel         string       `toml:"log_level"`         // "debug", "info", "warn" or "error"
	LogPath          string       `toml:"log_path"`          // Full path for log file including filename (creates parent directories)
	StrictCompletion bool         `toml:"strict_completion"` // Panic instead of logging when a completion fires twice
	SuggestDistance  int          `toml:"suggest_distance"`  // Max edit distance for "did you mean"; 0 uses the default, negative disables
	Logger           *slog.Logger `toml:"-"`                 // Use this logger instead of the package logger
}

const defaultOptionsTOML = `# routecoordinator options
codec = "json"
locale = "en"
log_level = "info"
log_path = ""
strict_completion = false
suggest_distance = 3
`

// DefaultOptions returns the options New uses when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Codec:           "json",
		Locale:          "en",
		LogLevel:        "info",
		SuggestDistance: constants.DefaultSuggestDistance,
	}
}

// DefaultOptionsTOML returns a commented options file matching DefaultOptions.
func DefaultOptionsTOML() string {
	return defaultOptionsTOML
}

// ParseOptions decodes TOML text over DefaultOptions. Unknown keys are an error.
func ParseOptions(text string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.Decode(text, &opts)
	if err != nil {
		return Options{}, fmt.Errorf("routecoordinator: parse options: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptions reads a TOML options file over DefaultOptions.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, fmt.Errorf("routecoordinator: load options %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptionsFromEnv loads the file named by ROUTECOORDINATOR_CONFIG, or returns
// DefaultOptions when the variable is unset.
func LoadOptionsFromEnv() (Options, error) {
	path := os.Getenv(constants.ConfigPathEnvVar)
	if path == "" {
		return DefaultOptions(), nil
	}
	return LoadOptions(path)
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, key := range undecoded {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	return fmt.Errorf("routecoordinator: unknown option keys: %s", strings.Join(keys, ", "))
}

// logLevel resolves the effective level: dev mode, then the environment
// override, then the configured value.
func (o Options) logLevel() string {
	if constants.IsDevMode() {
		return "debug"
	}
	if env := os.Getenv(constants.LogLevelEnvVar); env != "" {
		return env
	}
	return o.LogLevel
}

func (o Options) suggestDistance() int {
	switch {
	case o.SuggestDistance < 0:
		return 0
	case o.SuggestDistance == 0:
		return constants.DefaultSuggestDistance
	default:
		return o.SuggestDistance
	}
}

// logger returns Options.Logger when set. Otherwise a resolved log level gets a
// logger of its own on the package writer, and no level at all shares the
// package logger and its SetLogLevel setting.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	pathIgnored := o.LogPath != "" && !internal.SetLogPath(o.LogPath)

	logger := internal.GetLogger()
	if level := o.logLevel(); level != "" {
		logger = internal.NewLogger(internal.ParseLevel(level))
	}
	if pathIgnored {
		logger.Warn("log file already open, log_path ignored", slog.String("log_path", o.LogPath))
	}
	return logger
}

// SetLogPath sets the full path for the package log file, including filename.
// Call before the first Manager is created; it returns false once the log
// file has been opened.
func SetLogPath(path string) bool {
	return internal.SetLogPath(path)
}

// GetLogger returns the package logger used by Managers without Options.Logger.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum level of the package logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// Close releases the package log file, if one was opened.
func Close() {
	internal.CloseLogger()
}
