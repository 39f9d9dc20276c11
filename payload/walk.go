package payload

import (
	"reflect"
	"sort"
)

// DefaultMaxDepth bounds deep scans over upstream payloads.
const DefaultMaxDepth = 12

// KeyMatcher decides whether an object key is interesting to a deep scan.
type KeyMatcher func(key string) bool

// visitor tracks containers already entered, keyed by identity, so a cyclic
// structure built in memory cannot loop forever.
type visitor struct {
	seen     map[uintptr]struct{}
	maxDepth int
}

func newVisitor(maxDepth int) *visitor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &visitor{seen: make(map[uintptr]struct{}), maxDepth: maxDepth}
}

func (v *visitor) enter(container any) bool {
	rv := reflect.ValueOf(container)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.Len() == 0 {
			return true
		}
		p := rv.Pointer()
		if _, ok := v.seen[p]; ok {
			return false
		}
		v.seen[p] = struct{}{}
	}
	return true
}

// SortedKeys returns the keys of obj in lexical order.
func SortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DeepFindNumber searches root for the first key accepted by match whose value
// is numeric. At each object the direct keys are checked before descending;
// keys are visited in sorted order.
func DeepFindNumber(root any, match KeyMatcher, maxDepth int) (float64, bool) {
	return newVisitor(maxDepth).findNumber(root, match, 0)
}

func (v *visitor) findNumber(node any, match KeyMatcher, depth int) (float64, bool) {
	if depth > v.maxDepth {
		return 0, false
	}
	switch t := node.(type) {
	case map[string]any:
		if !v.enter(t) {
			return 0, false
		}
		keys := SortedKeys(t)
		for _, k := range keys {
			if match(k) {
				if n, ok := Number(t[k]); ok {
					return n, true
				}
			}
		}
		for _, k := range keys {
			if n, ok := v.findNumber(t[k], match, depth+1); ok {
				return n, true
			}
		}
	case []any:
		if !v.enter(t) {
			return 0, false
		}
		for _, item := range t {
			if n, ok := v.findNumber(item, match, depth+1); ok {
				return n, true
			}
		}
	}
	return 0, false
}
