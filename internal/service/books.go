package service

import (
	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/repo"
)

// Books implements the book use cases over a book repository.
type Books struct {
	repo *repo.Repository[*entity.Book]
}

func NewBooks(r *repo.Repository[*entity.Book]) *Books {
	return &Books{repo: r}
}

func (s *Books) Create(b *entity.Book) (*entity.Book, error) {
	return s.repo.Add(b)
}

func (s *Books) List() ([]*entity.Book, error) {
	return s.repo.GetAll()
}

func (s *Books) Get(id int) (*entity.Book, error) {
	return s.repo.GetByID(id)
}

// ByUser returns the books owned by the given user, insertion order
// preserved. An unknown user simply yields an empty list.
func (s *Books) ByUser(userID int) ([]*entity.Book, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	owned := make([]*entity.Book, 0)
	for _, b := range all {
		if b.UserID == userID {
			owned = append(owned, b)
		}
	}
	return owned, nil
}

func (s *Books) Update(id int, patch map[string]any) (*entity.Book, error) {
	return s.repo.Update(id, patch)
}

// ToggleStatus flips the book's status flag and persists the result. The
// negation is computed inside the store's critical section so concurrent
// toggles serialize instead of flipping from a stale read.
func (s *Books) ToggleStatus(id int) (*entity.Book, error) {
	return s.repo.Modify(id, func(b *entity.Book) error {
		b.Status = !b.Status
		return nil
	})
}

func (s *Books) Delete(id int) ([]*entity.Book, error) {
	return s.repo.Delete(id)
}
