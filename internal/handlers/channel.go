package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/esterlin12/tvplus/internal/apperr"
	"github.com/esterlin12/tvplus/internal/middleware"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/esterlin12/tvplus/internal/service"
	"github.com/go-chi/chi/v5"
)

type ChannelHandler struct {
	Channels *service.ChannelService
	Logger   *slog.Logger
}

// channelInput is the create/update body. Update is a full replace, so omitted
// optional fields are cleared.
type channelInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Logo        *string  `json:"logo"`
	URLs        []string `json:"urls"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
}

func (in channelInput) fields() models.ChannelFields {
	return models.ChannelFields{
		Name:        in.Name,
		Description: in.Description,
		Logo:        in.Logo,
		URLs:        in.URLs,
		Category:    in.Category,
	}
}

//
// ==========================
// Create Channel
// ==========================
//

func (h *ChannelHandler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var input channelInput
	if !decodeBody(w, r, &input) {
		return
	}

	channel, err := h.Channels.Create(r.Context(), caller, input.fields())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, channel)
}

//
// ==========================
// List Channels
// ==========================
//

// ListChannels accepts optional category (exact) and search (name or description substring).
func (h *ChannelHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, search := q.Get("category"), q.Get("search")
	if fields := invalidQueryText(map[string]string{"category": category, "search": search}); fields != nil {
		writeError(w, r, h.Logger, apperr.ValidationFields("invalid query parameters", fields))
		return
	}
	channels, err := h.Channels.List(r.Context(), category, search)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

//
// ==========================
// Get Channel By ID
// ==========================
//

func (h *ChannelHandler) GetChannel(w http.ResponseWriter, r *http.Request) {
	channel, err := h.Channels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, channel)
}

//
// ==========================
// Update Channel
// ==========================
//

func (h *ChannelHandler) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var input channelInput
	if !decodeBody(w, r, &input) {
		return
	}

	channel, err := h.Channels.Update(r.Context(), caller, chi.URLParam(r, "id"), input.fields())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, channel)
}

//
// ==========================
// Delete Channel (soft)
// ==========================
//

func (h *ChannelHandler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	if err := h.Channels.SoftDelete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Channel deleted successfully"})
}

//
// ==========================
// Playable URLs
// ==========================
//

func (h *ChannelHandler) PlayableURLs(w http.ResponseWriter, r *http.Request) {
	urls, err := h.Channels.PlayableURLs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"m3u8_urls": urls})
}

//
// ==========================
// My Channels
// ==========================
//

func (h *ChannelHandler) MyChannels(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	channels, err := h.Channels.ListOwned(r.Context(), caller)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

//
// ==========================
// Categories
// ==========================
//

func (h *ChannelHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Channels.Categories(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

// AllChannels is the admin listing: every active channel, unfiltered.
func (h *ChannelHandler) AllChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.Channels.List(r.Context(), "", "")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

// invalidQueryText flags values Postgres cannot store in a text parameter.
func invalidQueryText(values map[string]string) map[string]string {
	var fields map[string]string
	for name, v := range values {
		if !utf8.ValidString(v) || strings.ContainsRune(v, 0) {
			if fields == nil {
				fields = map[string]string{}
			}
			fields[name] = "must be valid UTF-8 without NUL bytes"
		}
	}
	return fields
}
