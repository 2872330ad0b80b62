// Package config handles application configuration: flag parsing, environment
// variable overrides, and the derived options threaded into the multiply
// engine.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable this package reads.
const EnvPrefix = "SSFFT_"

// DefaultAlgo is the algorithm used when none is requested.
const DefaultAlgo = "fft"

// Defaults for flags and environment overrides.
const (
	DefaultN         uint64 = 100000
	DefaultThreshold        = 1024
	DefaultTimeout          = 5 * time.Minute
)

// CalculationOptions is the reduced option set threaded into the multiply
// and matrix engines, independent of how it was configured.
type CalculationOptions struct {
	ParallelThreshold int
	FFTThreshold      int
	StrassenThreshold int
}

// AppConfig holds the fully resolved application configuration, merged from
// defaults, environment variables, and command-line flags in that order of
// increasing precedence.
type AppConfig struct {
	N                 uint64
	Threshold         int
	FFTThreshold      int
	StrassenThreshold int
	Timeout           time.Duration
	Algo              string
	Port              string
	ServerMode        bool
	JSONOutput        bool
	Verbose           bool
	Quiet             bool
	HexOutput         bool
	NoColor           bool
}

// ToCalculationOptions projects the fields the multiply/matrix engines
// actually consume.
func (c AppConfig) ToCalculationOptions() CalculationOptions {
	return CalculationOptions{
		ParallelThreshold: c.Threshold,
		FFTThreshold:      c.FFTThreshold,
		StrassenThreshold: c.StrassenThreshold,
	}
}

// ParseConfig builds an AppConfig from environment variables and then
// command-line flags, the latter taking precedence when explicitly set.
// algos lists the valid -algo values for the usage text; it does not
// restrict parsing itself, so callers can validate separately. The returned
// slice holds any positional arguments left over after flag parsing.
func ParseConfig(progName string, args []string, out io.Writer, algos []string) (AppConfig, []string, error) {
	cfg := AppConfig{
		N:                 getEnvUint64("N", DefaultN),
		Threshold:         getEnvInt("THRESHOLD", DefaultThreshold),
		FFTThreshold:      getEnvInt("FFT_THRESHOLD", DefaultThreshold),
		StrassenThreshold: getEnvInt("STRASSEN_THRESHOLD", DefaultThreshold),
		Timeout:           getEnvDuration("TIMEOUT", DefaultTimeout),
		Algo:              getEnvString("ALGO", DefaultAlgo),
		Port:              getEnvString("PORT", "8080"),
		ServerMode:        getEnvBool("SERVER", false),
		JSONOutput:        getEnvBool("JSON", false),
		Verbose:           getEnvBool("VERBOSE", false),
		Quiet:             getEnvBool("QUIET", false),
		HexOutput:         getEnvBool("HEX", false),
		NoColor:           getEnvBool("NO_COLOR", false),
	}

	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(out)
	setCustomUsage(fs)

	fs.Uint64Var(&cfg.N, "n", cfg.N, "value of n used by legacy index-based commands")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "bit-length threshold for switching to parallel execution")
	fs.IntVar(&cfg.FFTThreshold, "fft-threshold", cfg.FFTThreshold, "word-length threshold for switching to FFT multiplication")
	fs.IntVar(&cfg.StrassenThreshold, "strassen-threshold", cfg.StrassenThreshold, "dimension threshold for switching matrix multiply to the FFT path")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum duration for a single operation")
	fs.StringVar(&cfg.Algo, "algo", cfg.Algo, fmt.Sprintf("multiplication algorithm to use (%s)", strings.Join(algos, ", ")))
	fs.StringVar(&cfg.Port, "port", cfg.Port, "TCP port for server mode")
	fs.BoolVar(&cfg.ServerMode, "server", cfg.ServerMode, "run as an HTTP server instead of a one-shot CLI command")
	fs.BoolVar(&cfg.JSONOutput, "json", cfg.JSONOutput, "emit results as JSON")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress non-essential output")
	fs.BoolVar(&cfg.HexOutput, "hex", cfg.HexOutput, "display results in hexadecimal")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, nil, err
	}

	return cfg, fs.Args(), nil
}

func getEnvString(key, def string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		return v
	}
	return def
}

func getEnvUint64(key string, def uint64) uint64 {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return def
	}
	switch strings.ToUpper(v) {
	case "TRUE", "1", "YES":
		return true
	case "FALSE", "0", "NO":
		return false
	default:
		return def
	}
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
