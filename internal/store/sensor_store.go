package store

import (
	"context"

	"devicehub/internal/domain"

	"gorm.io/gorm"
)

type SensorStore struct{ db *gorm.DB }

func (s *Store) Sensors() *SensorStore { return &SensorStore{db: s.DB} }

func (st *SensorStore) Create(ctx context.Context, sensor *domain.Sensor) error {
	return translate(st.db.WithContext(ctx).Create(sensor).Error)
}

func (st *SensorStore) Get(ctx context.Context, sensorType string) (*domain.Sensor, error) {
	var sensor domain.Sensor
	if err := st.db.WithContext(ctx).First(&sensor, "type = ?", sensorType).Error; err != nil {
		return nil, translate(err)
	}
	return &sensor, nil
}

func (st *SensorStore) List(ctx context.Context) ([]domain.Sensor, error) {
	var sensors []domain.Sensor
	if err := st.db.WithContext(ctx).Order("type ASC").Find(&sensors).Error; err != nil {
		return nil, translate(err)
	}
	return sensors, nil
}

func (st *SensorStore) Update(ctx context.Context, sensorType string, unit string) error {
	return translate(st.db.WithContext(ctx).Model(&domain.Sensor{}).
		Where("type = ?", sensorType).
		Update("unit", unit).Error)
}

func (st *SensorStore) Delete(ctx context.Context, sensorType string) error {
	return translate(st.db.WithContext(ctx).Delete(&domain.Sensor{}, "type = ?", sensorType).Error)
}
