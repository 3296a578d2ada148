package user

import "io"

// CreateUserRequest represents the request payload for creating a new account.
type CreateUserRequest struct {
	FullName string
	Email    string
	Password string
}

// CreateUserResponse represents the response payload after creating an account.
type CreateUserResponse struct {
	ID    string
	Email string
}

// UpdateUserRequest represents the request payload for editing an account.
// Email selects the account; empty FullName or Password leave the stored
// value unchanged.
type UpdateUserRequest struct {
	Email    string
	FullName string
	Password string
}

// UpdateUserResponse represents the response payload after editing an account.
type UpdateUserResponse struct {
	ID    string
	Email string
}

// DeleteUserRequest represents the request payload for deleting an account.
type DeleteUserRequest struct {
	Email string
}

// ListUsersResponse represents the response payload for the account listing.
type ListUsersResponse struct {
	Users []User
}

// User represents an account DTO projected for listing responses.
type User struct {
	FullName string
	Email    string
}

// UploadImageRequest carries an uploaded profile image and its client-declared
// metadata. ContentType and Size come from the multipart part headers.
type UploadImageRequest struct {
	Email       string
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// UploadImageResponse represents the response payload after an image upload.
type UploadImageResponse struct {
	FilePath string
}
