package entity

// Book belongs to exactly one user via UserID. Status is a free boolean flag
// (read / unread in the reference frontend) toggled through its own endpoint.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	UserID int    `json:"user_id"`
	Status bool   `json:"status"`
}

func (b *Book) GetID() int   { return b.ID }
func (b *Book) SetID(id int) { b.ID = id }

// Validate checks the book's field rules, stopping at the first violation.
func (b *Book) Validate() error {
	if err := minLen("title", b.Title, 3); err != nil {
		return err
	}
	return positive("user_id", b.UserID)
}
