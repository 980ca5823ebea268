package headers

import (
	"fmt"
	"net/http"
	"strings"
)

// Parse turns "Key: Value" entries from -H flags or the config file into an
// http.Header. Repeated keys accumulate values in order.
func Parse(entries []string) (http.Header, error) {
	h := make(http.Header, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("malformed header %q (want \"Key: Value\")", entry)
		}
		h.Add(key, strings.TrimSpace(value))
	}
	return h, nil
}

// Apply sets every header in h on req, replacing values already present.
func Apply(req *http.Request, h http.Header) {
	for key, values := range h {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}
