// Package debug provides environment-driven debug switches for tracing
// conversion, merging, and build internals on stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Include   bool
	Merge     bool
	Eval      bool
	ExpandEnv bool
	Build     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Include = boolEnv("SX_DEBUG_INCLUDE")
	d.Merge = boolEnv("SX_DEBUG_MERGE")
	d.Eval = boolEnv("SX_DEBUG_EVAL")
	d.ExpandEnv = boolEnv("SX_DEBUG_EXPAND_ENV")
	d.Build = boolEnv("SX_DEBUG_BUILD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Include() bool {
	return d.Include
}
func Merge() bool {
	return d.Merge
}
func Eval() bool {
	return d.Eval
}
func ExpandEnv() bool {
	return d.ExpandEnv
}
func Build() bool {
	return d.Build
}
