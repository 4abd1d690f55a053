// backend/handlers/catalog_handler.go
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/vayven/inspecciones/backend/models"
	"github.com/vayven/inspecciones/backend/services"
)

// VehiclesHandler returns the vehicle roster for the form and the roster view.
// Expects GET to /api/vehicles
func VehiclesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}
	vehicles, err := services.GetVehiclesForDisplay()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get vehicles: %v", err))
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	respondWithJSON(w, http.StatusOK, vehicles)
}

// RoutesHandler returns the route list.
// Expects GET to /api/routes
func RoutesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}
	routes, err := services.GetRoutesForDisplay()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get routes: %v", err))
		return
	}
	if routes == nil {
		routes = []models.Route{}
	}
	respondWithJSON(w, http.StatusOK, routes)
}

// PartsHandler returns the assembled part catalog used to populate the
// damaged-parts selectors.
// Expects GET to /api/parts
func PartsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}
	catalog, err := services.GetPartCatalogForDisplay()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get part catalog: %v", err))
		return
	}
	if catalog == nil {
		catalog = []models.CatalogPart{}
	}
	respondWithJSON(w, http.StatusOK, catalog)
}

// ResolveRouteHandler resolves either route key to the full field group, so a
// client picking a route by number can fill in the name and vice versa.
// Expects GET to /api/routes/resolve?numero=N or ?nombre=NAME
func ResolveRouteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	numeroStr := r.URL.Query().Get("numero")
	nombre := r.URL.Query().Get("nombre")
	if numeroStr == "" && nombre == "" {
		respondWithError(w, http.StatusBadRequest, "Provide 'numero' or 'nombre' query parameter")
		return
	}

	var numero int
	if numeroStr != "" {
		var err error
		numero, err = strconv.Atoi(numeroStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid 'numero' parameter: "+err.Error())
			return
		}
	}

	group, err := services.ResolveRouteForDisplay(numero, nombre)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("Handler: Resolved route query (numero=%s, nombre=%s) to route %d.\n", numeroStr, nombre, group.Number)
	respondWithJSON(w, http.StatusOK, group)
}

// ResolveVehicleHandler resolves any vehicle key (economic number, plate, or
// empresa) to the full field group.
// Expects GET to /api/vehicles/resolve?numero_economico=|placa=|empresa=
func ResolveVehicleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	economico := r.URL.Query().Get("numero_economico")
	placa := r.URL.Query().Get("placa")
	empresa := r.URL.Query().Get("empresa")
	if economico == "" && placa == "" && empresa == "" {
		respondWithError(w, http.StatusBadRequest, "Provide 'numero_economico', 'placa', or 'empresa' query parameter")
		return
	}

	group, err := services.ResolveVehicleForDisplay(economico, placa, empresa)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, group)
}
