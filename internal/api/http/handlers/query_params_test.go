package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/ozzus/hopcraft/internal/application/shell"
)

func TestParseModeFromPath(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		wantMode      shell.Mode
		wantErrFilled bool
	}{
		{name: "reverse", path: "/mode/reverse", wantMode: shell.ModeReverse},
		{name: "smart with slash", path: "/mode/smart/", wantMode: shell.ModeSmart},
		{name: "missing mode", path: "/mode/", wantErrFilled: true},
		{name: "nested", path: "/mode/smart/x", wantErrFilled: true},
		{name: "unknown", path: "/mode/multi", wantErrFilled: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotMode, gotErr := parseModeFromPath(tc.path)
			if gotMode != tc.wantMode {
				t.Fatalf("expected mode %q, got %q", tc.wantMode, gotMode)
			}
			if (gotErr != "") != tc.wantErrFilled {
				t.Fatalf("expected errFilled=%v, got %q", tc.wantErrFilled, gotErr)
			}
		})
	}
}

func TestParseModeQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/state", nil)
	if mode, errMsg := parseModeQuery(req, shell.ModeSmart); mode != shell.ModeSmart || errMsg != "" {
		t.Fatalf("expected fallback, got %q %q", mode, errMsg)
	}

	req = httptest.NewRequest("GET", "/api/state?mode=REVERSE", nil)
	if mode, errMsg := parseModeQuery(req, shell.ModeSmart); mode != shell.ModeReverse || errMsg != "" {
		t.Fatalf("expected reverse, got %q %q", mode, errMsg)
	}
}

func TestParsePositiveIntQuery(t *testing.T) {
	tests := []struct {
		rawURL      string
		wantValue   int
		wantPresent bool
		wantErr     bool
	}{
		{rawURL: "/api/airports", wantValue: 0, wantPresent: false},
		{rawURL: "/api/airports?radius_km=", wantValue: 0, wantPresent: false},
		{rawURL: "/api/airports?radius_km=abc", wantPresent: true, wantErr: true},
		{rawURL: "/api/airports?radius_km=-5", wantPresent: true, wantErr: true},
		{rawURL: "/api/airports?radius_km=150", wantValue: 150, wantPresent: true},
	}

	for _, tc := range tests {
		req := httptest.NewRequest("GET", tc.rawURL, nil)
		value, present, errMsg := parsePositiveIntQuery(req, "radius_km")
		if value != tc.wantValue || present != tc.wantPresent || (errMsg != "") != tc.wantErr {
			t.Fatalf("%s: unexpected result %d %v %q", tc.rawURL, value, present, errMsg)
		}
	}
}
