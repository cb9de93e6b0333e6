// Package service holds the use cases sitting between the HTTP handlers and
// the repositories: uniqueness checks, credential matching, and the
// status-toggle flow.
package service

import (
	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/repo"
)

// Users implements the user use cases over a user repository.
type Users struct {
	repo *repo.Repository[*entity.User]
}

func NewUsers(r *repo.Repository[*entity.User]) *Users {
	return &Users{repo: r}
}

// Create registers a new user after checking that the email is not taken.
func (s *Users) Create(u *entity.User) (*entity.User, error) {
	_, taken, err := s.repo.Find(func(e *entity.User) bool { return e.Email == u.Email })
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &entity.ValidationError{Field: "email", Message: "Email already registered"}
	}
	return s.repo.Add(u)
}

// Login returns the user matching the given credentials. A missing field and
// a credential mismatch are both validation failures; the mismatch message
// deliberately does not say which half was wrong.
func (s *Users) Login(email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, &entity.ValidationError{Message: "Email and password are required"}
	}
	u, ok, err := s.repo.Find(func(e *entity.User) bool { return e.Email == email })
	if err != nil {
		return nil, err
	}
	if !ok || u.Password != password {
		return nil, &entity.ValidationError{Message: "Invalid email or password"}
	}
	return u, nil
}

func (s *Users) List() ([]*entity.User, error) {
	return s.repo.GetAll()
}

func (s *Users) Get(id int) (*entity.User, error) {
	return s.repo.GetByID(id)
}

func (s *Users) Update(id int, patch map[string]any) (*entity.User, error) {
	return s.repo.Update(id, patch)
}

func (s *Users) Delete(id int) ([]*entity.User, error) {
	return s.repo.Delete(id)
}
