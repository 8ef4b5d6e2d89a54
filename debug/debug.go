package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Load     bool
	Override bool
	Loader   bool
	Script   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("PYCS_DEBUG_LOAD")
	d.Override = boolEnv("PYCS_DEBUG_OVERRIDE")
	d.Loader = boolEnv("PYCS_DEBUG_LOADER")
	d.Script = boolEnv("PYCS_DEBUG_SCRIPT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Override() bool {
	return d.Override
}
func Loader() bool {
	return d.Loader
}
func Script() bool {
	return d.Script
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
