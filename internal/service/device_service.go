package service

import (
	"context"
	"errors"
	"fmt"

	"devicehub/internal/domain"
	"devicehub/internal/dto"
	"devicehub/internal/store"
)

// DeviceService composes the device registry and the two relation managers
// behind a single facade. Every multi-table write runs in one transaction:
// commit happens only when every step succeeded, otherwise the whole
// transaction rolls back.
type DeviceService struct {
	store *store.Store
}

func NewDeviceService(st *store.Store) *DeviceService {
	return &DeviceService{store: st}
}

// Create registers a device together with its initial sensor relations. The
// sensor types must already exist in the catalog; a missing one fails the
// foreign key and takes the device row down with it. On success the input
// payload is echoed back, not re-read from storage.
func (s *DeviceService) Create(ctx context.Context, req dto.CreateDeviceRequest) (dto.CreateDeviceRequest, error) {
	if req.ID == "" || req.Model == "" {
		return dto.CreateDeviceRequest{}, fmt.Errorf("%w: idDispositivo and modelo are required", ErrInvalidRequest)
	}
	if len(req.Sensors) == 0 {
		return dto.CreateDeviceRequest{}, fmt.Errorf("%w: sensores must name at least one sensor type", ErrInvalidRequest)
	}

	device := domain.Device{ID: req.ID, Model: req.Model}
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Devices().Create(ctx, &device); err != nil {
			return err
		}
		for _, ref := range req.Sensors {
			rel := domain.DeviceSensor{DeviceID: device.ID, SensorType: ref.Type}
			if err := tx.DeviceSensors().Link(ctx, &rel); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dto.CreateDeviceRequest{}, fmt.Errorf("%w: could not create device %s", ErrConflict, req.ID)
	}
	return req, nil
}

// GetView assembles the composite view for one device. Resolution is strict:
// a relation pointing at a missing sensor type is a data-integrity problem
// and propagates as not-found rather than being swallowed.
func (s *DeviceService) GetView(ctx context.Context, id string) (dto.DeviceView, error) {
	device, err := s.store.Devices().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.DeviceView{}, fmt.Errorf("%w: no device with id %s", ErrNotFound, id)
		}
		return dto.DeviceView{}, err
	}
	return s.buildView(ctx, device)
}

func (s *DeviceService) ListAll(ctx context.Context) ([]dto.DeviceView, error) {
	devices, err := s.store.Devices().List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]dto.DeviceView, 0, len(devices))
	for i := range devices {
		view, err := s.buildView(ctx, &devices[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ListByUser resolves the user's device relations best-effort: a relation
// whose device no longer resolves is skipped, not surfaced. This is the
// deliberate counterpart to GetView's strictness.
func (s *DeviceService) ListByUser(ctx context.Context, userID uint) ([]dto.DeviceView, error) {
	rels, err := s.store.DeviceUsers().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]dto.DeviceView, 0, len(rels))
	for _, rel := range rels {
		device, err := s.store.Devices().Get(ctx, rel.DeviceID)
		if err != nil {
			continue // dangling relation, tolerated here
		}
		view, err := s.buildView(ctx, device)
		if err != nil {
			return nil, fmt.Errorf("%w: could not assemble device %s", ErrConflict, rel.DeviceID)
		}
		views = append(views, view)
	}
	return views, nil
}

// Update applies, in one transaction: an additive owner link (an existing
// device↔user relation is never replaced or removed here), the sensor-set
// diff against the current relations, and the mutable field update. The
// device id itself never changes.
func (s *DeviceService) Update(ctx context.Context, id string, req dto.UpdateDeviceRequest) (dto.DeviceView, error) {
	if req.Model == "" {
		return dto.DeviceView{}, fmt.Errorf("%w: modelo is required", ErrInvalidRequest)
	}
	current, err := s.GetView(ctx, id)
	if err != nil {
		return dto.DeviceView{}, err
	}

	if req.UserID != nil && *req.UserID > 0 {
		if _, err := s.store.Users().GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return dto.DeviceView{}, fmt.Errorf("%w: no user with id %d", ErrNotFound, *req.UserID)
			}
			return dto.DeviceView{}, err
		}
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if req.UserID != nil && *req.UserID > 0 {
			linked, err := tx.DeviceUsers().Exists(ctx, id, *req.UserID)
			if err != nil {
				return err
			}
			if !linked {
				rel := domain.DeviceUser{DeviceID: id, UserID: *req.UserID}
				if err := tx.DeviceUsers().Link(ctx, &rel); err != nil {
					return err
				}
			}
		}

		if req.Sensors != nil {
			currentSet := make(map[string]bool, len(current.Sensors))
			for _, sensor := range current.Sensors {
				currentSet[sensor.Type] = true
			}
			targetSet := make(map[string]bool, len(*req.Sensors))
			for _, ref := range *req.Sensors {
				targetSet[ref.Type] = true
				if !currentSet[ref.Type] {
					rel := domain.DeviceSensor{DeviceID: id, SensorType: ref.Type}
					if err := tx.DeviceSensors().Link(ctx, &rel); err != nil {
						return err
					}
				}
			}
			for _, sensor := range current.Sensors {
				if !targetSet[sensor.Type] {
					if err := tx.DeviceSensors().Unlink(ctx, id, sensor.Type); err != nil {
						return err
					}
				}
			}
		}

		fields := map[string]any{"model": req.Model}
		if req.Alias != nil {
			fields["alias"] = *req.Alias
		}
		if req.Location != nil {
			fields["location"] = *req.Location
		}
		if req.Icon != nil {
			fields["icon"] = *req.Icon
		}
		return tx.Devices().UpdateFields(ctx, id, fields)
	})
	if err != nil {
		return dto.DeviceView{}, fmt.Errorf("%w: could not update device %s", ErrConflict, id)
	}

	return s.GetView(ctx, id)
}

// Remove deletes the device and everything that references it: user
// relations first, sensor relations second, the device row last, so the
// table state stays referentially consistent at every intermediate point.
// It returns the last composite view taken before deletion.
func (s *DeviceService) Remove(ctx context.Context, id string) (dto.DeviceView, error) {
	view, err := s.GetView(ctx, id)
	if err != nil {
		return dto.DeviceView{}, err
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.DeviceUsers().UnlinkAllByDevice(ctx, id); err != nil {
			return err
		}
		if err := tx.DeviceSensors().UnlinkAllByDevice(ctx, id); err != nil {
			return err
		}
		return tx.Devices().Delete(ctx, id)
	})
	if err != nil {
		return dto.DeviceView{}, fmt.Errorf("%w: could not remove device %s", ErrConflict, id)
	}
	return view, nil
}

// UnlinkUser removes the device↔user relation if it exists. A missing
// relation is not an error here; the device view comes back either way.
func (s *DeviceService) UnlinkUser(ctx context.Context, deviceID string, userID uint) (dto.DeviceView, error) {
	if _, err := s.store.Devices().Get(ctx, deviceID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.DeviceView{}, fmt.Errorf("%w: no device with id %s", ErrNotFound, deviceID)
		}
		return dto.DeviceView{}, err
	}
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.DeviceView{}, fmt.Errorf("%w: no user with id %d", ErrNotFound, userID)
		}
		return dto.DeviceView{}, err
	}

	linked, err := s.store.DeviceUsers().Exists(ctx, deviceID, userID)
	if err != nil {
		return dto.DeviceView{}, err
	}
	if linked {
		if err := s.store.DeviceUsers().Unlink(ctx, deviceID, userID); err != nil {
			return dto.DeviceView{}, fmt.Errorf("%w: could not unlink user %d from device %s", ErrConflict, userID, deviceID)
		}
	}
	return s.GetView(ctx, deviceID)
}

func (s *DeviceService) buildView(ctx context.Context, device *domain.Device) (dto.DeviceView, error) {
	rels, err := s.store.DeviceSensors().ListByDevice(ctx, device.ID)
	if err != nil {
		return dto.DeviceView{}, err
	}
	sensors := make([]domain.Sensor, 0, len(rels))
	for _, rel := range rels {
		sensor, err := s.store.Sensors().Get(ctx, rel.SensorType)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return dto.DeviceView{}, fmt.Errorf("%w: sensor type %s referenced by device %s", ErrNotFound, rel.SensorType, device.ID)
			}
			return dto.DeviceView{}, err
		}
		sensors = append(sensors, *sensor)
	}
	return dto.DeviceView{
		ID:       device.ID,
		Model:    device.Model,
		Alias:    device.Alias,
		Location: device.Location,
		Icon:     device.Icon,
		Sensors:  sensors,
	}, nil
}
