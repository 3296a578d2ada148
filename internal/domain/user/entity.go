package user

// User represents a user account in the system.
type User struct {
	ID        string // ID is the opaque unique identifier assigned by the store
	FullName  string // FullName is the full name of the user
	Email     string // Email is the unique email address and natural key of the account
	Password  string // Password is stored as submitted; hashing is a known gap
	ImagePath string // ImagePath is the stored profile image path, set at most once
}

// HasImage reports whether a profile image has already been uploaded.
func (u *User) HasImage() bool {
	return u.ImagePath != ""
}
