package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-account-service/internal/domain/user"
	pkgerrors "user-account-service/pkg/errors"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG. The gorm connection must
// be opened with TranslateError so unique-index violations surface as
// gorm.ErrDuplicatedKey.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        string `gorm:"primaryKey;size:36"`   // Store-assigned UUID
	FullName  string `gorm:"not null"`             // User's full name (required)
	Email     string `gorm:"not null;uniqueIndex"` // Unique email address; uniqueness enforced by the index
	Password  string `gorm:"not null"`             // Stored as submitted
	ImagePath string // Profile image path, empty until uploaded
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func toEntity(m *UserSchema) *user.User {
	return &user.User{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		Password:  m.Password,
		ImagePath: m.ImagePath,
	}
}

// Create inserts a new user and returns the persisted record with its
// store-assigned ID. A duplicate email is reported as an already-exists error;
// the unique index is the only uniqueness check, there is no preceding lookup.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:       uuid.NewString(),
		FullName: u.FullName,
		Email:    u.Email,
		Password: u.Password,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate email on create", zap.String("email", u.Email))
			return nil, pkgerrors.NewAlreadyExistsError("user", "User already exists")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("id", model.ID))
	return toEntity(&model), nil
}

// Save persists the full user record.
func (r *UserRepoPG) Save(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Password:  u.Password,
		ImagePath: u.ImagePath,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to save user in db", zap.Error(err), zap.String("id", u.ID))
		return fmt.Errorf("failed to save user: %w", err)
	}

	r.log.Info("user saved in db", zap.String("id", model.ID))
	return nil
}

// Delete removes a user by email and returns the number of rows removed.
// Zero rows means no account matched; the caller decides how to report that.
func (r *UserRepoPG) Delete(ctx context.Context, email string) (int64, error) {
	res := r.db.WithContext(ctx).Where("email = ?", email).Delete(&UserSchema{})
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.String("email", email))
		return 0, fmt.Errorf("failed to delete user: %w", res.Error)
	}

	r.log.Info("user delete executed", zap.String("email", email), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no account
// matches so the caller can distinguish absence from a storage failure.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toEntity(&model), nil
}

// List retrieves every user projected to full name and email only. Password
// and image path never leave the database on this path.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Select("full_name", "email").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = user.User{
			FullName: model.FullName,
			Email:    model.Email,
		}
	}

	return users, nil
}
