package effectchain

import (
	"math"
	"strings"
)

// Params holds the per-effect options of one preset entry.
type Params struct {
	Type string
	Num  map[string]float64
	Str  map[string]string
}

// GetNum safely extracts a numeric option, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetBool reports a boolean option. JSON booleans are stored as 0/1.
func (p Params) GetBool(key string, def bool) bool {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) {
		return def
	}

	return v != 0
}

// GetStr returns a trimmed string option, or def when missing or blank.
func (p Params) GetStr(key, def string) string {
	v := strings.TrimSpace(p.Str[key])
	if v == "" {
		return def
	}

	return v
}

// parseOptions splits a raw JSON options object into numeric and string
// maps. Booleans become 0/1; other value types are ignored.
func parseOptions(raw map[string]any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	for k, v := range raw {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case float32:
			num[k] = float64(t)
		case int:
			num[k] = float64(t)
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}
