package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Snapshot is the minimal data needed to render a textual diff between two
// states of an audited entity.
type Snapshot struct {
	EntityType string
	EntityID   string
	Values     map[string]any
}

// CanonicalLines flattens the snapshot into deterministic lines suitable for
// line diffing. Nested maps become dotted keys, slices indexed keys.
func (s Snapshot) CanonicalLines() []string {
	lines := []string{
		fmt.Sprintf("EntityType: %s", s.EntityType),
		fmt.Sprintf("EntityID: %s", s.EntityID),
		"Values:",
	}

	flat := map[string]string{}
	flattenSnapshotValue("", s.Values, flat)

	if len(flat) == 0 {
		return append(lines, "  (empty)")
	}

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("  %s: %s", key, flat[key]))
	}
	return lines
}

// DiffSnapshots renders a unified diff between two snapshots. Either side may
// be nil, which renders as an empty document.
func DiffSnapshots(baseLabel string, base *Snapshot, targetLabel string, target *Snapshot) string {
	var baseLines, targetLines []string
	if base != nil {
		baseLines = base.CanonicalLines()
	}
	if target != nil {
		targetLines = target.CanonicalLines()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", baseLabel)
	fmt.Fprintf(&b, "+++ %s\n", targetLabel)
	for _, op := range diffLines(baseLines, targetLines) {
		b.WriteString(op.marker)
		b.WriteString(op.text)
		b.WriteByte('\n')
	}
	return b.String()
}

func flattenSnapshotValue(prefix string, value any, flat map[string]string) {
	switch typed := value.(type) {
	case map[string]any:
		if len(typed) == 0 {
			if prefix != "" {
				flat[prefix] = "{}"
			}
			return
		}
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flattenSnapshotValue(next, typed[key], flat)
		}
	case []any:
		if len(typed) == 0 {
			if prefix != "" {
				flat[prefix] = "[]"
			}
			return
		}
		for idx, item := range typed {
			flattenSnapshotValue(fmt.Sprintf("%s[%d]", prefix, idx), item, flat)
		}
	case nil:
		if prefix != "" {
			flat[prefix] = "null"
		}
	default:
		if prefix == "" {
			return
		}
		if encoded, err := json.Marshal(typed); err == nil {
			flat[prefix] = string(encoded)
		} else {
			flat[prefix] = fmt.Sprintf("%v", typed)
		}
	}
}

type lineOp struct {
	marker string
	text   string
}

// diffLines walks a longest-common-subsequence table to produce keep, drop
// and add operations over whole lines.
func diffLines(base, target []string) []lineOp {
	m, n := len(base), len(target)
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			switch {
			case base[i] == target[j]:
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	ops := make([]lineOp, 0, m+n)
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case base[i] == target[j]:
			ops = append(ops, lineOp{marker: " ", text: base[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, lineOp{marker: "-", text: base[i]})
			i++
		default:
			ops = append(ops, lineOp{marker: "+", text: target[j]})
			j++
		}
	}
	for ; i < m; i++ {
		ops = append(ops, lineOp{marker: "-", text: base[i]})
	}
	for ; j < n; j++ {
		ops = append(ops, lineOp{marker: "+", text: target[j]})
	}
	return ops
}
