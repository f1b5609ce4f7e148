package metastore

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/block/hivemeta/pkg/schema"
)

// Pvals returns the value of every partition column in partSpec, in
// partition column order. Missing values are empty strings.
func Pvals(partCols schema.Columns, partSpec map[string]string) []string {
	vals := make([]string, 0, len(partCols))
	for _, col := range partCols {
		vals = append(vals, partSpec[col.Name])
	}
	return vals
}

// PvalMatches reports whether full has the same values as partial at every
// position where partial is not empty.
func PvalMatches(partial, full []string) bool {
	if len(partial) > len(full) {
		return false
	}
	for i, p := range partial {
		if p != "" && p != full[i] {
			return false
		}
	}
	return true
}

// MakeFilterString builds a filter such as `ds="2024-01-01" and hr="00"`
// from partition column values. Columns are sorted by name.
func MakeFilterString(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteString(" and ")
		}
		sb.WriteString(k + "=\"" + m[k] + "\"")
	}
	return sb.String()
}

// ValidatePartitionNameCharacters returns a MetaError naming the first
// partition value that the whitelist pattern does not match in full. A nil
// pattern allows everything.
func ValidatePartitionNameCharacters(vals []string, pattern *regexp.Regexp) error {
	if bad, ok := invalidPartitionValue(vals, pattern); ok {
		return &MetaError{Message: fmt.Sprintf("Partition value '%s' contains a character not matched by whitelist pattern '%s'.  (configure with %s)",
			bad, pattern.String(), PartitionWhitelistConfig)}
	}
	return nil
}

// PartitionNameHasValidCharacters reports whether every value matches the
// whitelist pattern.
func PartitionNameHasValidCharacters(vals []string, pattern *regexp.Regexp) bool {
	_, ok := invalidPartitionValue(vals, pattern)
	return !ok
}

func invalidPartitionValue(vals []string, pattern *regexp.Regexp) (string, bool) {
	if pattern == nil {
		return "", false
	}
	full := regexp.MustCompile(`^(?:` + pattern.String() + `)$`)
	for _, v := range vals {
		if !full.MatchString(v) {
			return v, true
		}
	}
	return "", false
}

// PartitionName returns the path-style name of a partition, such as
// "ds=2024-01-01/hr=00".
func PartitionName(partCols schema.Columns, vals []string) (string, error) {
	if len(partCols) != len(vals) {
		return "", &MetaError{Message: fmt.Sprintf("invalid partition: %d keys but %d values", len(partCols), len(vals))}
	}
	parts := make([]string, len(vals))
	for i, col := range partCols {
		parts[i] = col.Name + "=" + vals[i]
	}
	return strings.Join(parts, "/"), nil
}
