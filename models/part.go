// backend/models/part.go
package models

import "time"

// PartRow is one raw row of the partes worksheet: a (part, location) pair.
// A part with several tracked locations spans several rows; a part tracked
// without locations has a single row with an empty ubicacion_parte cell.
type PartRow struct {
	ID int64 `csv:"-" db:"id" json:"-"`

	Part     string `csv:"parte" db:"parte" json:"parte"`
	Location string `csv:"ubicacion_parte" db:"ubicacion_parte" json:"ubicacion_parte"`

	// Database specific fields
	SourceWorksheet string    `csv:"-" db:"source_worksheet" json:"-"`
	CreatedAt       time.Time `csv:"-" db:"created_at" json:"-"`
	UpdatedAt       time.Time `csv:"-" db:"updated_at" json:"-"`
}

// CatalogPart is one entry of the assembled part catalog: the part name plus its
// deduplicated valid locations, both in worksheet order. The expander iterates
// the catalog in this order, so worksheet order determines output order.
type CatalogPart struct {
	Part      string   `json:"parte"`
	Locations []string `json:"ubicaciones"`
}
