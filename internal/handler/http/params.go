package http

import (
	"net/http"
	"strconv"
)

// optionalQuery returns nil for absent or empty query parameters.
func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// getIntQueryParam falls back to defaultVal when the parameter is absent or
// not a number. Range checks are left to the filter's Validate.
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
