package entity

// User is a registered account. The password is stored as-is alongside the
// profile fields; hashing is out of scope for this service.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

func (u *User) GetID() int   { return u.ID }
func (u *User) SetID(id int) { u.ID = id }

// Validate checks the user's field rules, stopping at the first violation.
func (u *User) Validate() error {
	if err := minLen("name", u.Name, 3); err != nil {
		return err
	}
	return minLen("email", u.Email, 3)
}
