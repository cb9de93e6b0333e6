package handlers

import (
	"net/http"

	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/router"
	"github.com/alfagnish/bookshelf/internal/service"
)

// BooksHandler exposes the book CRUD and status-toggle endpoints.
type BooksHandler struct {
	svc *service.Books
}

// NewBooksHandler creates a new BooksHandler.
func NewBooksHandler(svc *service.Books) *BooksHandler {
	return &BooksHandler{svc: svc}
}

// Routes registers the book routes.
func (h *BooksHandler) Routes(rt *router.Router) {
	rt.Register("/books", http.MethodGet, h.List)
	rt.Register("/books/<id>", http.MethodGet, h.Get)
	rt.Register("/books/user/<id>", http.MethodGet, h.ByUser)
	rt.Register("/books", http.MethodPost, h.Create)
	rt.Register("/books/<id>", http.MethodPatch, h.Update)
	rt.Register("/books/toggle-status/<id>", http.MethodPatch, h.ToggleStatus)
	rt.Register("/books/<id>", http.MethodDelete, h.Delete)
}

// List returns all books.
func (h *BooksHandler) List(r *http.Request, _ router.Params, _ map[string]any) (int, any, error) {
	books, err := h.svc.List()
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, books, nil
}

// Get returns one book by ID.
func (h *BooksHandler) Get(r *http.Request, params router.Params, _ map[string]any) (int, any, error) {
	id, err := paramInt(params, "id")
	if err != nil {
		return 0, nil, err
	}
	b, err := h.svc.Get(id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, b, nil
}

// ByUser returns the books owned by one user.
func (h *BooksHandler) ByUser(r *http.Request, params router.Params, _ map[string]any) (int, any, error) {
	id, err := paramInt(params, "id")
	if err != nil {
		return 0, nil, err
	}
	books, err := h.svc.ByUser(id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, books, nil
}

// Create adds a new book; the server assigns the ID.
func (h *BooksHandler) Create(r *http.Request, _ router.Params, body map[string]any) (int, any, error) {
	b := &entity.Book{}
	if err := decodeInto(body, b); err != nil {
		return 0, nil, err
	}
	created, err := h.svc.Create(b)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, created, nil
}

// Update merges the request body onto the stored book.
func (h *BooksHandler) Update(r *http.Request, params router.Params, body map[string]any) (int, any, error) {
	id, err := paramInt(params, "id")
	if err != nil {
		return 0, nil, err
	}
	b, err := h.svc.Update(id, body)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, b, nil
}

// ToggleStatus flips the book's status flag. No request body is expected.
func (h *BooksHandler) ToggleStatus(r *http.Request, params router.Params, _ map[string]any) (int, any, error) {
	id, err := paramInt(params, "id")
	if err != nil {
		return 0, nil, err
	}
	b, err := h.svc.ToggleStatus(id)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, b, nil
}

// Delete removes a book and returns the remaining collection.
func (h *BooksHandler) Delete(r *http.Request, params router.Params, _ map[string]any) (int, any, error) {
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
