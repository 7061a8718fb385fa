package store

import (
	"context"

	"devicehub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceSensorStore owns the device↔sensor join table. It never touches the
// devices or sensors tables; existence of both ends is enforced by the
// foreign keys and surfaces as ErrForeignKeyViolated.
type DeviceSensorStore struct{ db *gorm.DB }

func (s *Store) DeviceSensors() *DeviceSensorStore { return &DeviceSensorStore{db: s.DB} }

func (d *DeviceSensorStore) Link(ctx context.Context, rel *domain.DeviceSensor) error {
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	return translate(d.db.WithContext(ctx).Create(rel).Error)
}

func (d *DeviceSensorStore) ListByDevice(ctx context.Context, deviceID string) ([]domain.DeviceSensor, error) {
	var rels []domain.DeviceSensor
	if err := d.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("created_at ASC, id ASC").
		Find(&rels).Error; err != nil {
		return nil, translate(err)
	}
	return rels, nil
}

// Unlink removes the (device, sensor) pair, reporting ErrRecordNotFound when
// no such relation exists.
func (d *DeviceSensorStore) Unlink(ctx context.Context, deviceID, sensorType string) error {
	var rel domain.DeviceSensor
	if err := d.db.WithContext(ctx).
		First(&rel, "device_id = ? AND sensor_type = ?", deviceID, sensorType).Error; err != nil {
		return translate(err)
	}
	return translate(d.db.WithContext(ctx).Delete(&domain.DeviceSensor{}, "id = ?", rel.ID).Error)
}

func (d *DeviceSensorStore) UnlinkAllByDevice(ctx context.Context, deviceID string) error {
	return translate(d.db.WithContext(ctx).Delete(&domain.DeviceSensor{}, "device_id = ?", deviceID).Error)
}
