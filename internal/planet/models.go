package planet

import (
	"time"
)

// Planet is the stored entity. The wire format is the camelCase JSON of the
// public API; provenance fields always carry the username of the most recent
// writer.
type Planet struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Diameter      int       `json:"diameter"`
	Moons         int       `json:"moons"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	CreatedBy     string    `json:"createdBy"`
	UpdatedBy     string    `json:"updatedBy"`
	PhotoFilename *string   `json:"photoFilename"`
}

// Input is the validated planet payload for create and replace. It owns the
// domain field schema; identity, provenance and photo linkage are set by the
// server, never by the client.
type Input struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Diameter    int     `json:"diameter" validate:"required,min=1"`
	Moons       int     `json:"moons" validate:"min=0"`
}

// PhotoResponse is the body of a successful photo upload.
type PhotoResponse struct {
	PhotoFilename string `json:"photoFilename"`
}
