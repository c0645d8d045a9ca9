package goosig

import (
	"github.com/spf13/viper"
)

// Config holds the tunable numeric constants spec.md §6 fixes: their
// defaults reproduce the spec exactly, and overriding them via the
// GOOSIG_* environment variables (see LoadConfig) is an operational escape
// hatch, not a protocol change — Init still enforces the modbits range and
// bit-width invariants regardless of what Config says. WindowSize and
// TableLen are loaded but not read anywhere: internal/wnaf uses its own
// fixed WindowSize and TableLen constants.
type Config struct {
	ChalBits     int   // GOO_CHAL_BITS
	EllDiffMax   int64 // GOO_ELLDIFF_MAX
	ExponentSize int   // GOO_EXPONENT_SIZE
	WindowSize   uint  // GOO_WINDOW_SIZE
	TableLen     int   // GOO_TABLEN
	MaxCombSize  int   // GOO_MAX_COMB_SIZE
}

// DefaultConfig returns the numeric constants fixed by spec.md §6.
func DefaultConfig() Config {
	return Config{
		ChalBits:     128,
		EllDiffMax:   512,
		ExponentSize: 2048,
		WindowSize:   6,
		TableLen:     1 << (6 - 2),
		MaxCombSize:  512,
	}
}

// LoadConfig builds a Config from GOOSIG_* environment variables, falling
// back to DefaultConfig for anything unset, the way ahnaguib-chainlink's
// store.Config wraps viper over a defaults struct.
func LoadConfig() Config {
	def := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("GOOSIG")
	v.AutomaticEnv()
	v.SetDefault("chal_bits", def.ChalBits)
	v.SetDefault("ell_diff_max", def.EllDiffMax)
	v.SetDefault("exponent_size", def.ExponentSize)
	v.SetDefault("window_size", def.WindowSize)
	v.SetDefault("table_len", def.TableLen)
	v.SetDefault("max_comb_size", def.MaxCombSize)

	return Config{
		ChalBits:     v.GetInt("chal_bits"),
		EllDiffMax:   v.GetInt64("ell_diff_max"),
		ExponentSize: v.GetInt("exponent_size"),
		WindowSize:   uint(v.GetInt("window_size")),
		TableLen:     v.GetInt("table_len"),
		MaxCombSize:  v.GetInt("max_comb_size"),
	}
}
