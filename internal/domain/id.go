package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CanonicalID normalizes a product id to its string form. Persisted data
// predating the current scheme mixed numeric and string ids; every
// comparison in the managers goes through this.
func CanonicalID(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
