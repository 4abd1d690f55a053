// backend/models/inspection.go
package models

import "time"

// Part states as they are written to the inspecciones collection. These string
// values are fixed: historical rows already use them and the damage-history view
// filters on them.
const (
	StateGood = "BUEN ESTADO"
	StateBad  = "MAL ESTADO"
)

// Inspection modalities.
const (
	ModalityRandom   = "ALEATORIA"
	ModalityTargeted = "DIRIGIDA"
)

// SourceTagInspection marks a record as originating from a field inspection,
// as opposed to rows other processes may add to the same collection.
const SourceTagInspection = "INSPECCIÓN"

// InspectionHeader holds the once-per-inspection fields collected from the form.
// The expander copies these verbatim onto every emitted record; it performs no
// validation of its own (the submission service validates before expanding).
type InspectionHeader struct {
	Folio          string `json:"folio_inspeccion"`
	Modality       string `json:"modalidad_inspeccion"`
	Date           string `json:"fecha_inspeccion"` // YYYY-MM-DD
	Time           string `json:"hora_inspeccion"`  // HH:MM
	Inspector      string `json:"inspector"`
	RouteNumber    int    `json:"numero_ruta"`
	RouteName      string `json:"ruta"`
	EconomicNumber string `json:"numero_economico"`
	Plate          string `json:"placa"`
	Empresa        string `json:"empresa"`
}

// InspectionRecord is one persisted row of the inspecciones collection: one part
// (or one damaged part location) of one inspection. CSV tags match the worksheet
// headers exactly; column order follows the worksheet.
type InspectionRecord struct {
	ID int64 `csv:"-" db:"id" json:"-"`

	Folio          string `csv:"folio_inspeccion" db:"folio_inspeccion" json:"folio_inspeccion"`
	Modality       string `csv:"modalidad_inspeccion" db:"modalidad_inspeccion" json:"modalidad_inspeccion"`
	Date           string `csv:"fecha_inspeccion" db:"fecha_inspeccion" json:"fecha_inspeccion"`
	Time           string `csv:"hora_inspeccion" db:"hora_inspeccion" json:"hora_inspeccion"`
	Inspector      string `csv:"inspector" db:"inspector" json:"inspector"`
	RouteNumber    int    `csv:"numero_ruta" db:"numero_ruta" json:"numero_ruta"`
	RouteName      string `csv:"ruta" db:"ruta" json:"ruta"`
	EconomicNumber string `csv:"numero_economico" db:"numero_economico" json:"numero_economico"`
	Plate          string `csv:"placa" db:"placa" json:"placa"`
	Empresa        string `csv:"empresa" db:"empresa" json:"empresa"`
	Part           string `csv:"parte" db:"parte" json:"parte"`
	// Empty string means "no location"; the store persists it as SQL NULL, the
	// same way the worksheet left those cells blank.
	Location    string `csv:"ubicacion_parte" db:"ubicacion_parte" json:"ubicacion_parte"`
	State       string `csv:"estado_parte" db:"estado_parte" json:"estado_parte"`
	Observation string `csv:"descripcion_evento" db:"descripcion_evento" json:"descripcion_evento"`
	SourceTag   string `csv:"fuente_evento" db:"fuente_evento" json:"fuente_evento"`

	// Follow-up columns the worksheet may carry for damaged parts. Populated by
	// the concession follow-up process, never by this service; carried through
	// for the damage-history view and CSV export.
	OficioDate       string `csv:"fecha_oficio,omitempty" db:"fecha_oficio" json:"fecha_oficio,omitempty"`
	EmpresaResponse  string `csv:"respuesta_empresa,omitempty" db:"respuesta_empresa" json:"respuesta_empresa,omitempty"`
	VerificationDate string `csv:"fecha_verificacion,omitempty" db:"fecha_verificacion" json:"fecha_verificacion,omitempty"`

	CreatedAt time.Time `csv:"-" db:"created_at" json:"-"`
}

// PartLocation keys an observation to a (part, location) pair selected on the
// damaged-parts form.
type PartLocation struct {
	Part     string
	Location string
}
