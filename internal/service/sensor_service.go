package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devicehub/internal/domain"
	"devicehub/internal/dto"
	"devicehub/internal/store"
)

// SensorService is the catalog of sensor types. Plain keyed CRUD; nothing
// here needs transactional composition.
type SensorService struct {
	store *store.Store
}

func NewSensorService(st *store.Store) *SensorService {
	return &SensorService{store: st}
}

func (s *SensorService) Create(ctx context.Context, req dto.SensorRequest) (*domain.Sensor, error) {
	if strings.TrimSpace(req.Type) == "" {
		return nil, fmt.Errorf("%w: tipo is required", ErrInvalidRequest)
	}
	sensor := domain.Sensor{Type: req.Type, Unit: req.Unit}
	if err := s.store.Sensors().Create(ctx, &sensor); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: sensor type %s already exists", ErrConflict, req.Type)
		}
		return nil, fmt.Errorf("%w: could not create sensor type %s", ErrConflict, req.Type)
	}
	return &sensor, nil
}

func (s *SensorService) List(ctx context.Context) ([]domain.Sensor, error) {
	return s.store.Sensors().List(ctx)
}

func (s *SensorService) Get(ctx context.Context, sensorType string) (*domain.Sensor, error) {
	sensor, err := s.store.Sensors().Get(ctx, sensorType)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sensor type %s", ErrNotFound, sensorType)
		}
		return nil, err
	}
	return sensor, nil
}

func (s *SensorService) Update(ctx context.Context, sensorType string, req dto.SensorRequest) (*domain.Sensor, error) {
	if _, err := s.Get(ctx, sensorType); err != nil {
		return nil, err
	}
	if err := s.store.Sensors().Update(ctx, sensorType, req.Unit); err != nil {
		return nil, fmt.Errorf("%w: could not update sensor type %s", ErrConflict, sensorType)
	}
	return &domain.Sensor{Type: sensorType, Unit: req.Unit}, nil
}

func (s *SensorService) Remove(ctx context.Context, sensorType string) (*domain.Sensor, error) {
	sensor, err := s.Get(ctx, sensorType)
	if err != nil {
		return nil, err
	}
	if err := s.store.Sensors().Delete(ctx, sensorType); err != nil {
		return nil, fmt.Errorf("%w: could not remove sensor type %s", ErrConflict, sensorType)
	}
	return sensor, nil
}
