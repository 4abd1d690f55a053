// backend/models/route.go
package models

import "time"

// Route represents one Va-y-Ven route from the rutas worksheet.
// CSV tags match the worksheet headers exactly.
type Route struct {
	ID int64 `csv:"-" db:"id" json:"-"`

	Number int    `csv:"numero_ruta" db:"numero_ruta" json:"numero_ruta"`
	Name   string `csv:"ruta" db:"ruta" json:"ruta"`

	// Database specific fields
	SourceWorksheet string    `csv:"-" db:"source_worksheet" json:"-"`
	CreatedAt       time.Time `csv:"-" db:"created_at" json:"-"`
	UpdatedAt       time.Time `csv:"-" db:"updated_at" json:"-"`
}

// RouteFieldGroup is the synchronized (number, name) pair the form shows.
// Either key resolves to the full group.
type RouteFieldGroup struct {
	Number int    `json:"numero_ruta"`
	Name   string `json:"ruta"`
}
