package repository

import (
	"context"

	"github.com/goldcrest/banking/pkg/domain"
	repo "github.com/goldcrest/banking/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository over the given session.
func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	record := toUserModel(user)
	return mapGormError(r.db.WithContext(ctx).Create(&record).Error)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var record User
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return toUserDomain(&record), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var record User
	if err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error; err != nil {
		return nil, mapGormError(err)
	}
	return toUserDomain(&record), nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("LOWER(username) = LOWER(?)", username).
		Count(&count).Error
	if err != nil {
		return false, mapGormError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"full_name":  user.FullName,
			"password":   user.Password,
			"updated_at": user.UpdatedAt,
		})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toUserModel(u *domain.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserDomain(record *User) *domain.User {
	return domain.NewUserFromData(
		record.ID,
		record.Username,
		record.FullName,
		record.Password,
		record.CreatedAt,
		record.UpdatedAt,
	)
}
