package handlers

import (
	"net/http"

	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/router"
	"github.com/alfagnish/bookshelf/internal/service"
	"github.com/alfagnish/bookshelf/internal/session"
)

// UsersHandler exposes the user CRUD and login endpoints.
type UsersHandler struct {
	svc       *service.Users
	jwtSecret string
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(svc *service.Users, jwtSecret string) *UsersHandler {
	return &UsersHandler{svc: svc, jwtSecret: jwtSecret}
}

// Routes registers the user routes. Creation and login go through the
// session guard so a replayed Session-ID is rejected.
func (h *UsersHandler) Routes(rt *router.Router, guard router.Middleware) {
	rt.Register("/users", http.MethodGet, h.List)
	rt.Register("/users/<id>", http.MethodGet, h.Get)
	rt.Register("/users", http.MethodPost, guard(h.Create))
	rt.Register("/users/login", http.MethodPost, guard(h.Login))
	rt.Register("/users/<id>", http.MethodPatch, h.Update)
	rt.Register("/users/<id>", http.MethodDelete, h.Delete)
}

// List returns all users.
func (h *UsersHandler) List(r *http.Request, _ router.Params, _ map[string]any) (int, any, error) {
	users, err := h.svc.List()
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, users, nil
}

// Get returns one user by ID.
func (h *UsersHandler) Get(r *http.Request, params router.Params, _ map[string]any) (int, any, error) {
	id, err := paramInt(params, "id")
	if err != nil {
		return 0, nil, err
	}
	u, err := h.svc.Get(id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, u, nil
}

// Create registers a new user; the server assigns the ID.
func (h *UsersHandler) Create(r *http.Request, _ router.Params, body map[string]any) (int, any, error) {
	u := &entity.User{}
	if err := decodeInto(body, u); err != nil {
		return 0, nil, err
	}
	created, err := h.svc.Create(u)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, created, nil
}

// Login checks credentials and returns the user along with a signed token.
func (h *UsersHandler) Login(r *http.Request, _ router.Params, body map[string]any) (int, any, error) {
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	u, err := h.svc.Login(email, password)
	if err != nil {
		return 0, nil, err
	}
	token, err := session.GenerateToken(h.jwtSecret, u.ID, u.Email)
	if err != nil {
		return 0, nil, err
	}
	resp, err := asMap(u)
	if err != nil {
		return 0, nil, err
	}
	resp["token"] = token
	return http.StatusOK, resp, nil
}

// Update merges the request body onto the stored user.
func (h *UsersHandler) Update(r *http.Request, params router.Params, body map[string]any) (int, any, error) {
	id, err := paramInt(params, "id")
	if err != nil {
		return 0, nil, err
	}
	u, err := h.svc.Update(id, body)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, u, nil
}

// Delete removes a user and returns the remaining collection.
func (h *UsersHandler) Delete(r *http.Request, params router.Params, _ map[string]any) (int, any, error) {
	id, err := paramInt(params, "id")
	if err != nil {
		return 0, nil, err
	}
	remaining, err := h.svc.Delete(id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, remaining, nil
}
