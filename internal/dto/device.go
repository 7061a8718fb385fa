package dto

import "devicehub/internal/domain"

type CreateDeviceRequest struct {
	ID      string      `json:"idDispositivo"`
	Model   string      `json:"modelo"`
	Sensors []SensorRef `json:"sensores"`
}

// UpdateDeviceRequest carries the mutable device fields plus two optional
// relation changes: Sensors is a pointer so that an absent list (leave
// relations alone) is distinguishable from an empty one (remove them all).
type UpdateDeviceRequest struct {
	ID       string       `json:"idDispositivo"`
	Model    string       `json:"modelo"`
	Alias    *string      `json:"alias,omitempty"`
	Location *string      `json:"ubicacion,omitempty"`
	Icon     *string      `json:"icon,omitempty"`
	Sensors  *[]SensorRef `json:"sensores,omitempty"`
	UserID   *uint        `json:"idUsuario,omitempty"`
}

// DeviceView is the composite read model: the device row plus its resolved
// sensor catalog entries.
type DeviceView struct {
	ID       string          `json:"idDispositivo"`
	Model    string          `json:"modelo"`
	Alias    *string         `json:"alias,omitempty"`
	Location *string         `json:"ubicacion,omitempty"`
	Icon     *string         `json:"icon,omitempty"`
	Sensors  []domain.Sensor `json:"sensores"`
}
