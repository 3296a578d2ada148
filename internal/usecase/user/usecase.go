package user

import (
	"context"
	"io"

	"go.uber.org/zap"

	domain "user-account-service/internal/domain/user"
	pkgerrors "user-account-service/pkg/errors"
	"user-account-service/pkg/validation"
)

// Repository defines the interface for account data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, a cached decorator) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)   // Insert a new account; duplicate email is a conflict
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve account by email; (nil, nil) when absent
	Save(ctx context.Context, u *domain.User) error                     // Persist the full record
	Delete(ctx context.Context, email string) (int64, error)            // Remove by email; returns rows removed
	List(ctx context.Context) ([]domain.User, error)                    // All accounts projected to full name and email
}

// ImageStore defines the interface for profile image blob storage.
type ImageStore interface {
	// Save writes the image bytes and returns the stored path.
	Save(ctx context.Context, originalName string, src io.Reader) (string, error)
	// Remove deletes a stored image.
	Remove(ctx context.Context, path string) error
}

// allowedImageTypes lists the client-declared content types the upload filter
// accepts. The filter runs before any store access.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Service implements the business logic for account management operations.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	repo           Repository  // Repository for account data access
	images         ImageStore  // Blob store for profile images
	maxUploadBytes int64       // Upload size limit
	log            *zap.Logger // Logger for structured logging
}

// New creates a new instance of Service with the provided repository, image
// store and logger.
func New(r Repository, images ImageStore, maxUploadBytes int64, log *zap.Logger) *Service {
	return &Service{repo: r, images: images, maxUploadBytes: maxUploadBytes, log: log}
}

// CreateUser creates a new account after validating the field formats.
// Email uniqueness is enforced by the storage layer's unique index, not by a
// preceding lookup, so concurrent creates cannot race past the check.
func (uc *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	uc.log.Info("creating user", zap.String("email", in.Email))

	if fields := validation.ValidateAccount(in.Email, in.FullName, in.Password); len(fields) > 0 {
		uc.log.Warn("create user validation failed", zap.String("email", in.Email), zap.Any("fields", fields))
		return nil, pkgerrors.NewValidationError(fields)
	}

	created, err := uc.repo.Create(ctx, &domain.User{
		FullName: in.FullName,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{ID: created.ID, Email: created.Email}, nil
}

// UpdateUser edits an existing account selected by email. An empty full name
// leaves the stored name unchanged; the password is replaced only when a
// non-empty value is provided. Edit applies no format validation.
func (uc *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	uc.log.Info("updating user", zap.String("email", in.Email))

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to load user for update", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if u == nil {
		uc.log.Warn("user not found for update", zap.String("email", in.Email))
		return nil, pkgerrors.NewNotFoundError("user", "User not found")
	}

	if in.FullName != "" {
		u.FullName = in.FullName
	}
	if in.Password != "" {
		u.Password = in.Password
	}

	if err := uc.repo.Save(ctx, u); err != nil {
		uc.log.Error("failed to update user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	return &UpdateUserResponse{ID: u.ID, Email: u.Email}, nil
}

// DeleteUser removes an account by email.
func (uc *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	uc.log.Info("deleting user", zap.String("email", in.Email))

	rows, err := uc.repo.Delete(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to delete user", zap.String("email", in.Email), zap.Error(err))
		return err
	}
	if rows == 0 {
		uc.log.Warn("user not found for delete", zap.String("email", in.Email))
		return pkgerrors.NewNotFoundError("user", "User not found")
	}

	return nil
}

// ListUsers retrieves every account projected to full name and email.
func (uc *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			FullName: du.FullName,
			Email:    du.Email,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}

// UploadImage stores a profile image for the account selected by email.
// The content-type filter and size limit run before any store access. The
// image path is write-once: a second upload for the same account conflicts.
//
// The file write and the record update are not transactional. The file is
// stored first; if the record update fails the file is removed best-effort,
// so a crash inside that window can orphan a file on disk.
func (uc *Service) UploadImage(ctx context.Context, in UploadImageRequest) (*UploadImageResponse, error) {
	uc.log.Info("uploading image",
		zap.String("email", in.Email),
		zap.String("content_type", in.ContentType),
		zap.Int64("size", in.Size),
	)

	if !allowedImageTypes[in.ContentType] {
		uc.log.Warn("unsupported upload content type", zap.String("email", in.Email), zap.String("content_type", in.ContentType))
		return nil, pkgerrors.NewUnsupportedMediaTypeError(in.ContentType)
	}
	if in.Size > uc.maxUploadBytes {
		uc.log.Warn("upload exceeds size limit", zap.String("email", in.Email), zap.Int64("size", in.Size))
		return nil, pkgerrors.NewTooLargeError(in.Size, uc.maxUploadBytes)
	}

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to load user for upload", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if u == nil {
		uc.log.Warn("user not found for upload", zap.String("email", in.Email))
		return nil, pkgerrors.NewNotFoundError("user", "User not found")
	}
	if u.HasImage() {
		uc.log.Warn("image already uploaded", zap.String("email", in.Email), zap.String("path", u.ImagePath))
		return nil, pkgerrors.NewAlreadyExistsError("image", "Image already uploaded")
	}

	path, err := uc.images.Save(ctx, in.FileName, in.File)
	if err != nil {
		uc.log.Error("failed to store image", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	u.ImagePath = path
	if err := uc.repo.Save(ctx, u); err != nil {
		uc.log.Error("failed to record image path", zap.String("email", in.Email), zap.Error(err))
		if rmErr := uc.images.Remove(ctx, path); rmErr != nil {
			uc.log.Warn("failed to remove orphaned image", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, err
	}

	return &UploadImageResponse{FilePath: path}, nil
}
