package store

import (
	"context"
	"errors"

	"devicehub/internal/domain"

	"gorm.io/gorm"
)

// Typed error kinds surfaced to the service layer. Callers pick messages from
// the kind; the engine-specific text is never inspected.
var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrForeignKeyViolated = errors.New("foreign key violated")
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// WithTx runs fn inside a single transaction. Any error returned by fn rolls
// the whole transaction back; commit happens only on the success path.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}

// AutoMigrate creates the six tables, entities before join tables.
func (s *Store) AutoMigrate() error {
	return s.DB.AutoMigrate(
		&domain.User{},
		&domain.Admin{},
		&domain.Device{},
		&domain.Sensor{},
		&domain.DeviceSensor{},
		&domain.DeviceUser{},
	)
}

// translate maps gorm's typed errors (requires TranslateError in the gorm
// config) onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKeyViolated
	default:
		return err
	}
}
