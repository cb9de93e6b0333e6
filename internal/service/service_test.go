package service

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/repo"
	"github.com/alfagnish/bookshelf/internal/store"
)

func newUsers(t *testing.T) *Users {
	t.Helper()
	st, err := store.Open[*entity.User](filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	return NewUsers(repo.New("user", st))
}

func newBooks(t *testing.T) *Books {
	t.Helper()
	st, err := store.Open[*entity.Book](filepath.Join(t.TempDir(), "books.json"))
	require.NoError(t, err)
	return NewBooks(repo.New("book", st))
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := newUsers(t)
	_, err := s.Create(&entity.User{Name: "John Doe", Email: "a@x.com", Age: 30, Password: "pw"})
	require.NoError(t, err)

	_, err = s.Create(&entity.User{Name: "Jane Doe", Email: "a@x.com", Age: 25, Password: "pw"})
	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email already registered", ve.Message)

	// The first user is still the only one.
	all, err := s.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLogin(t *testing.T) {
	s := newUsers(t)
	_, err := s.Create(&entity.User{Name: "John Doe", Email: "johndoe@example.com", Age: 30, Password: "default"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  string
	}{
		{name: "valid credentials", email: "johndoe@example.com", password: "default"},
		{name: "wrong password", email: "johndoe@example.com", password: "nope", wantErr: "Invalid email or password"},
		{name: "unknown email", email: "ghost@example.com", password: "default", wantErr: "Invalid email or password"},
		{name: "missing email", email: "", password: "default", wantErr: "Email and password are required"},
		{name: "missing password", email: "johndoe@example.com", password: "", wantErr: "Email and password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := s.Login(tt.email, tt.password)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "John Doe", u.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestBooksByUser(t *testing.T) {
	s := newBooks(t)
	for _, b := range []*entity.Book{
		{Title: "1984", UserID: 1},
		{Title: "Brave New World", UserID: 2},
		{Title: "Animal Farm", UserID: 1},
	} {
		_, err := s.Create(b)
		require.NoError(t, err)
	}

	owned, err := s.ByUser(1)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "1984", owned[0].Title)
	assert.Equal(t, "Animal Farm", owned[1].Title)

	// Unknown user gets an empty list, not an error.
	none, err := s.ByUser(99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestToggleStatusTwiceRestoresFlag(t *testing.T) {
	s := newBooks(t)
	created, err := s.Create(&entity.Book{Title: "1984", UserID: 1})
	require.NoError(t, err)
	assert.False(t, created.Status)

	once, err := s.ToggleStatus(created.ID)
	require.NoError(t, err)
	assert.True(t, once.Status)

	twice, err := s.ToggleStatus(created.ID)
	require.NoError(t, err)
	assert.False(t, twice.Status)
}

func TestConcurrentTogglesNetToOriginalFlag(t *testing.T) {
	// An even number of toggles must restore the flag no matter how the
	// requests interleave: each flip has to read the current value inside
	// the store's critical section, not from a stale earlier load.
	s := newBooks(t)
	created, err := s.Create(&entity.Book{Title: "1984", UserID: 1})
	require.NoError(t, err)
	require.False(t, created.Status)

	const toggles = 4
	for iter := 0; iter < 20; iter++ {
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := 0; i < toggles; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := s.ToggleStatus(created.ID)
				assert.NoError(t, err)
			}()
		}
		close(start)
		wg.Wait()

		got, err := s.Get(created.ID)
		require.NoError(t, err)
		require.False(t, got.Status, "iteration %d: %d concurrent toggles must net to the original flag", iter, toggles)
	}
}

func TestToggleStatusNotFound(t *testing.T) {
	s := newBooks(t)
	_, err := s.ToggleStatus(42)
	require.ErrorIs(t, err, repo.ErrNotFound)
	assert.Equal(t, "book not found", err.Error())
}
