package store

import (
	"context"

	"devicehub/internal/domain"

	"gorm.io/gorm"
)

// AdminStore owns the 1:1 admin-flag side table. Presence of a row is the
// whole signal; there is nothing to read out of it.
type AdminStore struct{ db *gorm.DB }

func (s *Store) Admins() *AdminStore { return &AdminStore{db: s.DB} }

func (a *AdminStore) Grant(ctx context.Context, userID uint) error {
	return translate(a.db.WithContext(ctx).Create(&domain.Admin{UserID: userID}).Error)
}

func (a *AdminStore) Exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&domain.Admin{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (a *AdminStore) Revoke(ctx context.Context, userID uint) error {
	return translate(a.db.WithContext(ctx).Delete(&domain.Admin{}, "user_id = ?", userID).Error)
}
