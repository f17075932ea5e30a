package substitute

import (
	"sort"
	"strings"
)

// Pair is one substitution: every literal occurrence of Key is replaced
// by Value.
type Pair struct {
	Key   string
	Value string
}

// Pairs selects the entries of environ ("NAME=value" strings, as returned by
// os.Environ) whose name starts with prefix. The match is case-sensitive and
// byte-for-byte. When a name repeats, the first entry wins, as with
// os.Getenv. The result is sorted by key.
func Pairs(environ []string, prefix string) []Pair {
	if prefix == "" {
		return nil
	}

	seen := make(map[string]bool)
	var pairs []Pair
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) || seen[name] {
			continue
		}
		seen[name] = true
		pairs = append(pairs, Pair{Key: name, Value: value})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key < pairs[j].Key
	})
	return pairs
}

// Overlap records a key that occurs inside another pair's key or value.
// Results then depend on application order and are undefined.
type Overlap struct {
	Key     string
	Other   string
	InValue bool
}

func Overlaps(pairs []Pair) []Overlap {
	var out []Overlap
	for i, a := range pairs {
		for j, b := range pairs {
			if i == j {
				continue
			}
			if strings.Contains(b.Key, a.Key) {
				out = append(out, Overlap{Key: a.Key, Other: b.Key})
			}
			if strings.Contains(b.Value, a.Key) {
				out = append(out, Overlap{Key: a.Key, Other: b.Key, InValue: true})
			}
		}
	}
	return out
}
