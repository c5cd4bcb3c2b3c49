package registry

import (
	"sort"

	"github.com/blockforge/core/internal/nbt"
)

// jsonToNBT converts a value decoded from encoding/json (map[string]any,
// []any, string, float64, bool, nil) into the matching nbt.Value. Whole-
// valued floats become nbt.Int so small integer-looking JSON fields (ids,
// heights, counts) round-trip as TAG_Int rather than TAG_Double; anything
// with a fractional part becomes nbt.Float, matching vanilla registry data.
func jsonToNBT(v any) nbt.Value {
	switch t := v.(type) {
	case nil:
		return nbt.String("")
	case bool:
		if t {
			return nbt.Byte(1)
		}
		return nbt.Byte(0)
	case float64:
		if t == float64(int32(t)) {
			return nbt.Int(int32(t))
		}
		return nbt.Float(float32(t))
	case string:
		return nbt.String(t)
	case []any:
		list := make(nbt.List, 0, len(t))
		for _, e := range t {
			list = append(list, jsonToNBT(e))
		}
		return list
	case map[string]any:
		c := nbt.NewCompound()
		for _, k := range sortedKeys(t) {
			c.Set(k, jsonToNBT(t[k]))
		}
		return c
	default:
		return nbt.String("")
	}
}

// sortedKeys returns m's keys sorted, so repeated encodings of the same
// decoded JSON object are byte-identical.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
