package card

import (
	"strconv"
	"strings"
)

// GenerateKey returns prefix_N where N is one more than the largest numeric
// suffix already used with prefix. The result is never in existing.
func GenerateKey(prefix string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	max := 0
	for _, k := range existing {
		taken[k] = true
		rest, ok := strings.CutPrefix(k, prefix+"_")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	for n := max + 1; ; n++ {
		candidate := prefix + "_" + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}
