// backend/handlers/inspection_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/vayven/inspecciones/backend/models"
	"github.com/vayven/inspecciones/backend/services"
)

// SubmitInspectionHandler handles form submissions.
// Expects POST to /api/inspections with a SubmitInspectionRequest JSON body.
func SubmitInspectionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.SubmitInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	log.Printf("Handler: Received inspection submission, folio '%s', unit '%s'.\n", req.Folio, req.EconomicNumber)

	resp, err := services.SubmitInspection(req)
	if err != nil {
		var validationErr *services.ValidationError
		var duplicateErr *services.DuplicateSubmissionError
		switch {
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Message)
		case errors.As(err, &duplicateErr):
			respondWithError(w, http.StatusConflict, duplicateErr.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save inspection: %v", err))
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, resp)
}

// DamageHistoryHandler returns the MAL ESTADO history for one company.
// Expects GET to /api/inspections/damage-history?empresa=NAME
// Without the empresa parameter it returns the list of companies to choose from.
func DamageHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	empresa := r.URL.Query().Get("empresa")
	if empresa == "" {
		empresas, err := services.GetInspectedEmpresas()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list empresas: %v", err))
			return
		}
		if empresas == nil {
			empresas = []string{}
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"empresas": empresas})
		return
	}

	records, err := services.GetDamageHistory(empresa)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get damage history: %v", err))
		return
	}
	if records == nil { // Ensure we always return an array for JSON, even if empty
		records = []models.InspectionRecord{}
	}
	respondWithJSON(w, http.StatusOK, records)
}

// ExportInspectionsHandler streams the full inspection collection as CSV.
// Expects GET to /api/inspections/export.csv
func ExportInspectionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	out, err := services.ExportInspectionsCSV()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to export inspections: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="inspecciones.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Printf("Handler ERROR: Failed to write CSV export response: %v", err)
	}
}
