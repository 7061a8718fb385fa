package domain

import (
	"time"

	"github.com/google/uuid"
)

// Device is a registered physical unit. The ID is the MAC-like identifier
// supplied by the client at registration and never changes afterwards.
type Device struct {
	ID        string    `gorm:"type:text;primaryKey;column:id" json:"idDispositivo"`
	Model     string    `gorm:"type:text;not null" json:"modelo"`
	Alias     *string   `gorm:"type:text" json:"alias,omitempty"`
	Location  *string   `gorm:"type:text" json:"ubicacion,omitempty"`
	Icon      *string   `gorm:"type:text" json:"icon,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}

func (Device) TableName() string { return "devices" }

// Sensor is a catalog entry describing a kind of sensor and its unit.
type Sensor struct {
	Type string `gorm:"type:text;primaryKey;column:type" json:"tipo"`
	Unit string `gorm:"type:text;not null" json:"umdd"`
}

func (Sensor) TableName() string { return "sensors" }

// DeviceSensor links a device to a sensor type. Both ends are real foreign
// keys, so inserting a relation for an unknown device or sensor fails at the
// storage layer instead of being pre-checked.
type DeviceSensor struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID   string    `gorm:"type:text;not null;uniqueIndex:ux_device_sensors" json:"idDispositivo"`
	SensorType string    `gorm:"type:text;not null;uniqueIndex:ux_device_sensors" json:"tipo"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"-"`

	Device *Device `gorm:"foreignKey:DeviceID" json:"-"`
	Sensor *Sensor `gorm:"foreignKey:SensorType;references:Type" json:"-"`
}

func (DeviceSensor) TableName() string { return "device_sensors" }

// DeviceUser records that a user registered a device. Deliberately not
// FK-constrained: listings tolerate dangling rows, so the join table must be
// allowed to outlive either end.
type DeviceUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID  string    `gorm:"type:text;not null;uniqueIndex:ux_device_users" json:"idDispositivo"`
	UserID    uint      `gorm:"not null;uniqueIndex:ux_device_users" json:"idUsuario"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
}

func (DeviceUser) TableName() string { return "device_users" }
