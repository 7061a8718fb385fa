package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"devicehub/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st := New(db)
	if err := st.AutoMigrate(); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return st
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx *Store) error {
		if err := tx.Users().Create(ctx, &domain.User{Name: "ana", Email: "ana@example.com", Password: "x"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := st.Users().GetByEmail(ctx, "ana@example.com"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected user rolled back, got %v", err)
	}
}

func TestUserEmailUnique(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Users().Create(ctx, &domain.User{Name: "ana", Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := st.Users().Create(ctx, &domain.User{Name: "bob", Email: "a@b.com", Password: "y"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestDeviceSensorLinkDuplicatePair(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Sensors().Create(ctx, &domain.Sensor{Type: "temperatura", Unit: "C"}); err != nil {
		t.Fatalf("sensor: %v", err)
	}
	if err := st.Devices().Create(ctx, &domain.Device{ID: "AA:BB:CC", Model: "v1"}); err != nil {
		t.Fatalf("device: %v", err)
	}

	rel := domain.DeviceSensor{DeviceID: "AA:BB:CC", SensorType: "temperatura"}
	if err := st.DeviceSensors().Link(ctx, &rel); err != nil {
		t.Fatalf("first link: %v", err)
	}
	err := st.DeviceSensors().Link(ctx, &domain.DeviceSensor{DeviceID: "AA:BB:CC", SensorType: "temperatura"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestDeviceSensorLinkUnknownSensor(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Devices().Create(ctx, &domain.Device{ID: "AA:BB:CC", Model: "v1"}); err != nil {
		t.Fatalf("device: %v", err)
	}
	err := st.DeviceSensors().Link(ctx, &domain.DeviceSensor{DeviceID: "AA:BB:CC", SensorType: "nonexistent"})
	if !errors.Is(err, ErrForeignKeyViolated) {
		t.Fatalf("expected ErrForeignKeyViolated, got %v", err)
	}
}

func TestDeviceSensorUnlinkMissing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.DeviceSensors().Unlink(ctx, "AA:BB:CC", "temperatura")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeviceUserPairUnique(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.DeviceUsers().Link(ctx, &domain.DeviceUser{DeviceID: "AA:BB:CC", UserID: 7}); err != nil {
		t.Fatalf("first link: %v", err)
	}
	err := st.DeviceUsers().Link(ctx, &domain.DeviceUser{DeviceID: "AA:BB:CC", UserID: 7})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	exists, err := st.DeviceUsers().Exists(ctx, "AA:BB:CC", 7)
	if err != nil || !exists {
		t.Fatalf("expected relation to exist, got exists=%v err=%v", exists, err)
	}
}

func TestAdminGrantExistsRevoke(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := domain.User{Name: "ana", Email: "ana@example.com", Password: "x"}
	if err := st.Users().Create(ctx, &user); err != nil {
		t.Fatalf("user: %v", err)
	}

	exists, err := st.Admins().Exists(ctx, user.ID)
	if err != nil || exists {
		t.Fatalf("expected no admin flag yet, got exists=%v err=%v", exists, err)
	}

	if err := st.Admins().Grant(ctx, user.ID); err != nil {
		t.Fatalf("grant: %v", err)
	}
	exists, err = st.Admins().Exists(ctx, user.ID)
	if err != nil || !exists {
		t.Fatalf("expected admin flag, got exists=%v err=%v", exists, err)
	}

	// Only one flag row per user.
	if err := st.Admins().Grant(ctx, user.ID); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey on second grant, got %v", err)
	}

	if err := st.Admins().Revoke(ctx, user.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	exists, _ = st.Admins().Exists(ctx, user.ID)
	if exists {
		t.Fatalf("expected flag revoked")
	}
}
