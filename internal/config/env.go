package config

import (
	"os"
	"strings"

	"github.com/drone/envsubst"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// substituteEnvVars expands ${VAR} references in a config file. Unset
// variables are left as written.
func substituteEnvVars(content []byte) ([]byte, error) {
	out, err := envsubst.Eval(string(content), func(name string) string {
		if value, exists := os.LookupEnv(name); exists {
			return value
		}
		return "${" + name + "}"
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// ApplyEnv overlays the prefix and roots taken from the control variables
// named by PrefixVar and RootsVar. Empty values do not override.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(c.PrefixVar); ok && v != "" {
		c.Prefix = v
	}

	if v, ok := lookup(c.RootsVar); ok {
		if roots := SplitRoots(v); len(roots) > 0 {
			c.Roots = roots
		}
	}
}

// SplitRoots splits a root list on whitespace and commas, dropping empty
// entries. Colons are valid in paths and are not separators.
func SplitRoots(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
