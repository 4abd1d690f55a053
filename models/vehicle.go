// backend/models/vehicle.go
package models

import "time"

// Vehicle represents one unit from the vehiculos worksheet.
// CSV tags match the worksheet headers exactly.
type Vehicle struct {
	ID int64 `csv:"-" db:"id" json:"-"`

	EconomicNumber string `csv:"numero_economico" db:"numero_economico" json:"numero_economico"`
	Plate          string `csv:"placa" db:"placa" json:"placa"`
	Empresa        string `csv:"empresa" db:"empresa" json:"empresa"`

	// Database specific fields
	SourceWorksheet string    `csv:"-" db:"source_worksheet" json:"-"`
	CreatedAt       time.Time `csv:"-" db:"created_at" json:"-"`
	UpdatedAt       time.Time `csv:"-" db:"updated_at" json:"-"`
}

// VehicleFieldGroup is the synchronized trio of vehicle identifiers the form
// shows. Any one of the three keys resolves to the full group.
type VehicleFieldGroup struct {
	EconomicNumber string `json:"numero_economico"`
	Plate          string `json:"placa"`
	Empresa        string `json:"empresa"`
}
