package api

import (
	"net/http"
	"strconv"

	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/go-chi/chi/v5"
)

// pathID parses the named chi URL parameter as an id of entity. A missing or
// malformed value yields a *domain.InvalidIDError such as "Invalid recipe ID".
func pathID(r *http.Request, param, entity string) (int64, error) {
	return domain.ParseID(chi.URLParam(r, param), entity)
}

// pageRequest reads page and per_page from the query string. ok is false when
// neither is present, meaning the caller should return the full listing.
// Malformed values fall back to defaults.
func pageRequest(r *http.Request, defaultPerPage int) (domain.PageRequest, bool) {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("per_page") {
		return domain.PageRequest{}, false
	}
	page := queryInt(q.Get("page"), 1)
	perPage := queryInt(q.Get("per_page"), defaultPerPage)
	return domain.NewPageRequest(page, perPage, defaultPerPage), true
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
