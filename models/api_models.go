// backend/models/api_models.go
package models

// DamagedLocationInput is one flagged location of a damaged part, with the
// inspector's free-text observation (may be empty).
type DamagedLocationInput struct {
	Location    string `json:"ubicacion"`
	Observation string `json:"observacion"`
}

// DamagedPartInput is one part the inspector marked damaged, with the locations
// flagged on the form in selection order.
type DamagedPartInput struct {
	Part      string                 `json:"parte"`
	Locations []DamagedLocationInput `json:"ubicaciones"`
}

// SubmitInspectionRequest is the expected JSON body for POST /api/inspections.
type SubmitInspectionRequest struct {
	InspectionHeader
	DamagedParts []DamagedPartInput `json:"partes_danadas"`
}

// SubmitInspectionResponse acknowledges a persisted inspection.
type SubmitInspectionResponse struct {
	ReceiptID    string `json:"receipt_id"`
	RecordsAdded int    `json:"records_added"`
	Message      string `json:"message"`
}

// IntegrityIssue is one finding of the data integrity check.
type IntegrityIssue struct {
	Severity string `json:"severity"` // "error" or "warning"
	Message  string `json:"message"`
}

// IntegrityReport is the result of a full integrity check over the mirrored
// collections. Issues are reported, never auto-repaired.
type IntegrityReport struct {
	InspectionRows int              `json:"inspection_rows"`
	VehicleRows    int              `json:"vehicle_rows"`
	RouteRows      int              `json:"route_rows"`
	Issues         []IntegrityIssue `json:"issues"`
	OK             bool             `json:"ok"`
}
