package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/ozzus/hopcraft/internal/api/http/web"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeHTML renders into a buffer first so a template failure still yields a clean 500.
func writeHTML(log *zap.Logger, w http.ResponseWriter, tmpl *template.Template, status int, view interface{}) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, web.PageTemplate, view); err != nil {
		log.Error("render page failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
