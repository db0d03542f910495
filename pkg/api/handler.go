package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/florakit/herbarium/pkg/flora"
	"github.com/florakit/herbarium/pkg/kit"
)

// NewRouter returns an http.Handler with all catalog API routes plus the
// static asset tree (photos and icons) under /static/.
func NewRouter(cat *flora.Catalog, staticRoot string) http.Handler {
	mux := http.NewServeMux()
	h := &handler{endpoints: newEndpoints(cat), cat: cat}

	mux.HandleFunc("GET /v1/species", h.handleListSpecies)
	mux.HandleFunc("GET /v1/species/{id}", h.handleGetSpecies)
	mux.HandleFunc("GET /v1/filters", h.handleListFilters)
	mux.HandleFunc("GET /v1/classify/leaf/{text}", h.handleClassifyLeaf)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	if staticRoot != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticRoot))))
	}

	return cors(requestID(mux))
}

type handler struct {
	endpoints
	cat *flora.Catalog
}

// --- species list ---

func (h *handler) handleListSpecies(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listSpecies(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- single species by slug ---

func (h *handler) handleGetSpecies(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}

	resp, err := h.getSpecies(r.Context(), &getSpeciesReq{ID: id})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- filters summary ---

func (h *handler) handleListFilters(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listFilters(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- leaf classification ---

func (h *handler) handleClassifyLeaf(w http.ResponseWriter, r *http.Request) {
	text := r.PathValue("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "missing text")
		return
	}

	resp, err := h.classifyLeaf(r.Context(), &classifyLeafReq{Text: text})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status  string `json:"status"`
	Species int    `json:"species"`
	Icons   int    `json:"icons"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Species: h.cat.RecordCount(),
		Icons:   h.cat.IconCount(),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID tags every request with an id, echoed in X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(kit.WithRequestID(r.Context(), id)))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
