package models

// User represents a user of the catalog. Password is only populated on its
// way to the backend during registration; established sessions never carry
// it. Admin-ness is never stored on the user, it is derived by comparing
// the email against the configured admin address.
type User struct {
	ID       ID     `json:"id,omitzero"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// UserPatch carries a partial update for the session user. Nil fields are
// left untouched.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
