package dto

type SensorRequest struct {
	Type string `json:"tipo"`
	Unit string `json:"umdd"`
}

// SensorRef names a sensor type inside a device payload. The unit is accepted
// but ignored; the catalog is the only authority on units.
type SensorRef struct {
	Type string `json:"tipo"`
	Unit string `json:"umdd,omitempty"`
}
