// backend/services/inspection_service.go
package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vayven/inspecciones/backend/config"
	"github.com/vayven/inspecciones/backend/database"
	"github.com/vayven/inspecciones/backend/models"
)

// ValidationError marks a submission problem the inspector can correct on the
// form (missing folio, no locations for a damaged part, ...). Handlers map it
// to 400 instead of 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExpandInspection turns one inspection's form state into the full record set
// to persist: one row per part when the part is undamaged, one row per flagged
// (part, location) pair when it is damaged.
//
// Iteration is in catalog order, so the output preserves the part order of the
// partes worksheet; within a damaged part the flagged locations keep their
// selection order. Undamaged parts get the textually shortest catalogued
// location as a display placeholder (first one wins on a tie), or an empty
// location when the part has none. A damaged part whose selection is empty
// emits no rows; SubmitInspection rejects that case before calling here.
//
// The only error is a missing observation for a flagged pair, which means the
// form state fell out of sync, not that the inspector did anything wrong.
func ExpandInspection(
	header models.InspectionHeader,
	catalog []models.CatalogPart,
	damagedParts []string,
	selections map[string][]string,
	observations map[models.PartLocation]string,
) ([]models.InspectionRecord, error) {
	damaged := make(map[string]bool, len(damagedParts))
	for _, p := range damagedParts {
		damaged[p] = true
	}

	records := make([]models.InspectionRecord, 0, len(catalog))
	for _, part := range catalog {
		if damaged[part.Part] {
			for _, location := range selections[part.Part] {
				key := models.PartLocation{Part: part.Part, Location: location}
				observation, ok := observations[key]
				if !ok {
					return nil, fmt.Errorf("observation missing for parte '%s', ubicacion '%s'", part.Part, location)
				}
				records = append(records, newRecord(header, part.Part, location, models.StateBad, observation))
			}
			continue
		}
		records = append(records, newRecord(header, part.Part, defaultLocation(part.Locations), models.StateGood, ""))
	}
	return records, nil
}

func newRecord(header models.InspectionHeader, part, location, state, observation string) models.InspectionRecord {
	return models.InspectionRecord{
		Folio:          header.Folio,
		Modality:       header.Modality,
		Date:           header.Date,
		Time:           header.Time,
		Inspector:      header.Inspector,
		RouteNumber:    header.RouteNumber,
		RouteName:      header.RouteName,
		EconomicNumber: header.EconomicNumber,
		Plate:          header.Plate,
		Empresa:        header.Empresa,
		Part:           part,
		Location:       location,
		State:          state,
		Observation:    observation,
		SourceTag:      models.SourceTagInspection,
	}
}

// defaultLocation picks the placeholder location for an undamaged part: the
// shortest non-blank catalogued location, first match winning on equal length.
// Downstream reporting groups by this value, so the tie-break must stay stable.
// Length is counted in characters, not bytes; accented labels like "atrás"
// would otherwise lose ties they should win.
func defaultLocation(locations []string) string {
	best := ""
	bestLen := 0
	for _, loc := range locations {
		if strings.TrimSpace(loc) == "" {
			continue
		}
		n := utf8.RuneCountInString(loc)
		if best == "" || n < bestLen {
			best = loc
			bestLen = n
		}
	}
	return best
}

// recentSubmissions debounces duplicate submits of the same inspection: the
// sheet UI could fire the save action twice and nothing downstream deduplicates.
var (
	recentSubmissionsMu sync.Mutex
	recentSubmissions   = make(map[string]time.Time)
)

func submissionKey(folio, economicNumber string) string {
	return folio + "|" + economicNumber
}

func isDuplicateSubmission(folio, economicNumber string, window time.Duration) bool {
	recentSubmissionsMu.Lock()
	defer recentSubmissionsMu.Unlock()

	now := time.Now()
	for k, t := range recentSubmissions {
		if now.Sub(t) >= window {
			delete(recentSubmissions, k)
		}
	}
	last, ok := recentSubmissions[submissionKey(folio, economicNumber)]
	return ok && now.Sub(last) < window
}

// markSubmissionAccepted records a persisted inspection for debouncing. It runs
// only after the append succeeded; a rejected write must leave the inspector
// free to resubmit the same folio right away.
func markSubmissionAccepted(folio, economicNumber string) {
	recentSubmissionsMu.Lock()
	defer recentSubmissionsMu.Unlock()
	recentSubmissions[submissionKey(folio, economicNumber)] = time.Now()
}

// DuplicateSubmissionError signals that an identical inspection was accepted
// moments ago. Handlers map it to 409.
type DuplicateSubmissionError struct {
	Folio string
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("inspection with folio '%s' was already submitted moments ago", e.Folio)
}

// SubmitInspection validates the request, expands it into the record set, and
// appends the records to the store. Reference reads on this path go straight to
// the database, never through the display cache.
func SubmitInspection(req models.SubmitInspectionRequest) (*models.SubmitInspectionResponse, error) {
	if strings.TrimSpace(req.Folio) == "" {
		return nil, &ValidationError{Message: "Por favor indica el número de folio de la inspección."}
	}
	if strings.TrimSpace(req.EconomicNumber) == "" {
		return nil, &ValidationError{Message: "Por favor indica el número económico del vehículo."}
	}
	if req.Modality != models.ModalityRandom && req.Modality != models.ModalityTargeted {
		return nil, &ValidationError{Message: fmt.Sprintf("Modalidad de inspección inválida '%s'. Usa %s o %s.", req.Modality, models.ModalityRandom, models.ModalityTargeted)}
	}
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return nil, &ValidationError{Message: "Formato de fecha inválido. Usa YYYY-MM-DD."}
		}
	}

	catalog, err := FreshPartCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load part catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("part catalog is empty; sync the partes worksheet before submitting inspections")
	}

	known := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		known[p.Part] = true
	}

	damagedParts := make([]string, 0, len(req.DamagedParts))
	selections := make(map[string][]string, len(req.DamagedParts))
	observations := make(map[models.PartLocation]string)
	for _, dp := range req.DamagedParts {
		if !known[dp.Part] {
			return nil, &ValidationError{Message: fmt.Sprintf("La parte '%s' no existe en el catálogo.", dp.Part)}
		}
		if len(dp.Locations) == 0 {
			// Upstream this silently dropped the part from the record set.
			// Treated here as user-correctable so flagged damage never vanishes.
			return nil, &ValidationError{Message: fmt.Sprintf("Selecciona al menos una ubicación para la parte dañada '%s'.", dp.Part)}
		}
		damagedParts = append(damagedParts, dp.Part)
		for _, loc := range dp.Locations {
			selections[dp.Part] = append(selections[dp.Part], loc.Location)
			observations[models.PartLocation{Part: dp.Part, Location: loc.Location}] = loc.Observation
		}
	}

	window := config.AppConfig.Freshness.SubmitDebounceWindow
	if window > 0 && isDuplicateSubmission(req.Folio, req.EconomicNumber, window) {
		return nil, &DuplicateSubmissionError{Folio: req.Folio}
	}

	records, err := ExpandInspection(req.InspectionHeader, catalog, damagedParts, selections, observations)
	if err != nil {
		return nil, fmt.Errorf("failed to expand inspection %s: %w", req.Folio, err)
	}

	if err := database.AppendInspectionRecords(records); err != nil {
		return nil, fmt.Errorf("failed to append inspection records for folio %s: %w", req.Folio, err)
	}
	if window > 0 {
		markSubmissionAccepted(req.Folio, req.EconomicNumber)
	}

	receiptID := uuid.New().String()
	log.Printf("Service: Inspection %s persisted as %d records (receipt %s).\n", req.Folio, len(records), receiptID)

	return &models.SubmitInspectionResponse{
		ReceiptID:    receiptID,
		RecordsAdded: len(records),
		Message:      "Inspección guardada exitosamente.",
	}, nil
}
