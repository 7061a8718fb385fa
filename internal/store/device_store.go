package store

import (
	"context"

	"devicehub/internal/domain"

	"gorm.io/gorm"
)

type DeviceStore struct{ db *gorm.DB }

func (s *Store) Devices() *DeviceStore { return &DeviceStore{db: s.DB} }

func (d *DeviceStore) Create(ctx context.Context, device *domain.Device) error {
	return translate(d.db.WithContext(ctx).Create(device).Error)
}

func (d *DeviceStore) Get(ctx context.Context, id string) (*domain.Device, error) {
	var device domain.Device
	if err := d.db.WithContext(ctx).First(&device, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &device, nil
}

func (d *DeviceStore) List(ctx context.Context) ([]domain.Device, error) {
	var devices []domain.Device
	if err := d.db.WithContext(ctx).Order("id ASC").Find(&devices).Error; err != nil {
		return nil, translate(err)
	}
	return devices, nil
}

// UpdateFields rewrites the mutable columns; the id itself is immutable once
// the device exists.
func (d *DeviceStore) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return translate(d.db.WithContext(ctx).Model(&domain.Device{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

func (d *DeviceStore) Delete(ctx context.Context, id string) error {
	return translate(d.db.WithContext(ctx).Delete(&domain.Device{}, "id = ?", id).Error)
}
