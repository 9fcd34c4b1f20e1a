package http

import (
	"encoding/json"
	"net/http"
	"time"

	"edublog/internal/domain"
	"edublog/internal/dto"
	"edublog/internal/httpx"
	"edublog/internal/netutil"
	"edublog/internal/service"
)

type handler struct {
	auth        service.AuthService
	posts       service.PostService
	reads       service.PostReadService
	disciplines service.DisciplineService
	now         func() time.Time
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.auth.Login(r.Context(), email, netutil.ClientIP(r), r.UserAgent())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	if err := h.auth.Logout(r.Context(), id.SessionID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.posts.List(r.Context(), page, viewerRole(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *handler) searchPosts(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearch(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.posts.Search(r.Context(), q, viewerRole(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathPostID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

type createPostBody struct {
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	DisciplineID json.RawMessage `json:"disciplineId"`
	Status       string          `json:"status"`
}

func (h *handler) createPost(w http.ResponseWriter, r *http.Request) {
	var body createPostBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	disc, err := parseDisciplineID(body.DisciplineID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	caller, _ := IdentityFromContext(r.Context())
	post, err := h.posts.Create(r.Context(), dto.CreatePost{
		Title:        body.Title,
		Content:      body.Content,
		DisciplineID: disc,
		Status:       domain.PostStatus(body.Status),
	}, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, post)
}

type updatePostBody struct {
	Title        *string         `json:"title"`
	Content      *string         `json:"content"`
	DisciplineID json.RawMessage `json:"disciplineId"`
	Status       *string         `json:"status"`
}

func (h *handler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathPostID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body updatePostBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	disc, err := parseDisciplineID(body.DisciplineID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	patch := dto.PostPatch{Title: body.Title, Content: body.Content, DisciplineID: disc}
	if body.Status != nil {
		st := domain.PostStatus(*body.Status)
		patch.Status = &st
	}
	post, err := h.posts.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

func (h *handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathPostID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathPostID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	caller, _ := IdentityFromContext(r.Context())
	rec, created, err := h.reads.MarkAsRead(r.Context(), id, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpx.WriteJSON(w, status, rec)
}

func (h *handler) checkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathPostID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	caller, _ := IdentityFromContext(r.Context())
	res, err := h.reads.CheckIfRead(r.Context(), id, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *handler) listDisciplines(w http.ResponseWriter, r *http.Request) {
	res, err := h.disciplines.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
