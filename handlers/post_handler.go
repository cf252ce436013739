package handlers

import (
	"net/http"
	"strconv"

	"github.com/dartsliga/league-system/middleware"
	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
	"github.com/dartsliga/league-system/services"
)

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var input services.PostInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	post, err := h.postService.Create(r.Context(), input, caller.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "postID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// List returns published posts for the public feed. The optional query
// parameters type, limit and offset narrow the result.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PostFilter{PublishedOnly: true}

	if raw := r.URL.Query().Get("type"); raw != "" {
		postType := models.PostType(raw)
		switch postType {
		case models.PostTypeNews, models.PostTypeAnnouncement, models.PostTypeTournament:
			filter.Type = &postType
		default:
			respondError(w, http.StatusBadRequest, "invalid post type filter")
			return
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	posts, err := h.postService.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ListAll returns every post including drafts, for the admin view.
func (h *PostHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context(), repositories.PostFilter{})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "postID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	var input services.PostInput
	if err := readJSON(w, r, &input); err != nil {
		respondBadRequest(w, err)
		return
	}

	post, err := h.postService.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "postID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	post, err := h.postService.UploadImage(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "postID")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := h.postService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
