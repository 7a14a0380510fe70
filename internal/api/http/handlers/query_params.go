package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ozzus/hopcraft/internal/application/shell"
)

func parseModeFromPath(path string) (shell.Mode, string) {
	const prefix = "/mode/"
	if !strings.HasPrefix(path, prefix) {
		return "", "invalid path, expected /mode/{reverse|smart}"
	}

	part := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if part == "" || strings.Contains(part, "/") {
		return "", "invalid path, expected /mode/{reverse|smart}"
	}

	mode, ok := shell.ParseMode(part)
	if !ok {
		return "", "invalid mode"
	}
	return mode, ""
}

// parseModeQuery falls back to fallback when the query has no mode.
func parseModeQuery(r *http.Request, fallback shell.Mode) (shell.Mode, string) {
	raw := strings.TrimSpace(r.URL.Query().Get("mode"))
	if raw == "" {
		return fallback, ""
	}

	mode, ok := shell.ParseMode(raw)
	if !ok {
		return "", "invalid mode, expected reverse or smart"
	}
	return mode, ""
}

func parseFloatQuery(r *http.Request, key string) (value float64, present bool, errMsg string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false, ""
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, "invalid " + key
	}
	return parsed, true, ""
}

func parsePositiveIntQuery(r *http.Request, key string) (value int, present bool, errMsg string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false, ""
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, true, "invalid " + key
	}
	return parsed, true, ""
}
