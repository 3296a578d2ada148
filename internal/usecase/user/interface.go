package user

import "context"

// Usecase defines the interface for account business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) error
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	UploadImage(ctx context.Context, in UploadImageRequest) (*UploadImageResponse, error)
}
