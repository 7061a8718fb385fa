package store

import (
	"context"

	"devicehub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceUserStore owns the device↔user join table.
type DeviceUserStore struct{ db *gorm.DB }

func (s *Store) DeviceUsers() *DeviceUserStore { return &DeviceUserStore{db: s.DB} }

func (d *DeviceUserStore) Link(ctx context.Context, rel *domain.DeviceUser) error {
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	return translate(d.db.WithContext(ctx).Create(rel).Error)
}

func (d *DeviceUserStore) ListByUser(ctx context.Context, userID uint) ([]domain.DeviceUser, error) {
	var rels []domain.DeviceUser
	if err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rels).Error; err != nil {
		return nil, translate(err)
	}
	return rels, nil
}

func (d *DeviceUserStore) ListByDevice(ctx context.Context, deviceID string) ([]domain.DeviceUser, error) {
	var rels []domain.DeviceUser
	if err := d.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("created_at ASC, id ASC").
		Find(&rels).Error; err != nil {
		return nil, translate(err)
	}
	return rels, nil
}

func (d *DeviceUserStore) Exists(ctx context.Context, deviceID string, userID uint) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&domain.DeviceUser{}).
		Where("device_id = ? AND user_id = ?", deviceID, userID).
		Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (d *DeviceUserStore) Unlink(ctx context.Context, deviceID string, userID uint) error {
	var rel domain.DeviceUser
	if err := d.db.WithContext(ctx).
		First(&rel, "device_id = ? AND user_id = ?", deviceID, userID).Error; err != nil {
		return translate(err)
	}
	return translate(d.db.WithContext(ctx).Delete(&domain.DeviceUser{}, "id = ?", rel.ID).Error)
}

func (d *DeviceUserStore) UnlinkAllByDevice(ctx context.Context, deviceID string) error {
	return translate(d.db.WithContext(ctx).Delete(&domain.DeviceUser{}, "device_id = ?", deviceID).Error)
}
