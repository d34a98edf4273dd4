package utils

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SplitList splits a comma-separated value, trimming entries and dropping empty ones.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// QueryList reads a comma-separated query parameter.
func QueryList(c echo.Context, name string) []string {
	return SplitList(c.QueryParam(name))
}

// QueryOptional returns nil when the parameter is absent or empty.
func QueryOptional(c echo.Context, name string) *string {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil
	}
	return &v
}
