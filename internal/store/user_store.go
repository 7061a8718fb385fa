package store

import (
	"context"

	"devicehub/internal/domain"

	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	return translate(u.db.WithContext(ctx).Create(usr).Error)
}

func (u *UserStore) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := u.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// Update rewrites the mutable columns. Email is included because the service
// has already refused any attempt to change it through this path.
func (u *UserStore) Update(ctx context.Context, usr *domain.User) error {
	return translate(u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", usr.ID).
		Updates(map[string]any{
			"name":     usr.Name,
			"email":    usr.Email,
			"password": usr.Password,
		}).Error)
}

func (u *UserStore) Delete(ctx context.Context, id uint) error {
	return translate(u.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id).Error)
}
