package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/ozzus/hopcraft/internal/api/http/web"
)

// NewRouter mounts the pages, the JSON API behind CORS and the embedded assets.
func NewRouter(page *PageHandler, api *APIHandler, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", page.Index)
	mux.HandleFunc("/mode/", page.SwitchMode)
	mux.HandleFunc("/search/reverse", page.SearchReverse)
	mux.HandleFunc("/search/smart", page.SearchSmart)
	mux.HandleFunc("/healthz", healthHandler)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/state", api.State)
	apiMux.HandleFunc("/api/map", api.Map)
	apiMux.HandleFunc("/api/airports", api.Airports)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
	})
	mux.Handle("/api/", corsHandler.Handler(apiMux))

	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
