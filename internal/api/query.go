package api

import (
	"fmt"
	"net/url"
	"strings"
)

// Params is a query-parameter map. Nil values are omitted when building the
// URL, so callers can pass optional filters without pre-pruning the map.
type Params map[string]any

// BuildURL joins base and path and appends encoded query parameters.
// Nil-valued params are skipped; everything else is stringified.
func BuildURL(base, path string, params Params) string {
	u := strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u += path

	query := encodeParams(params)
	if query == "" {
		return u
	}
	return u + "?" + query
}

func encodeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, val := range params {
		if val == nil {
			continue
		}
		switch v := val.(type) {
		case *string:
			if v == nil {
				continue
			}
			values.Set(key, *v)
		case *int:
			if v == nil {
				continue
			}
			values.Set(key, fmt.Sprint(*v))
		case *float64:
			if v == nil {
				continue
			}
			values.Set(key, fmt.Sprint(*v))
		case string:
			values.Set(key, v)
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values.Encode()
}
