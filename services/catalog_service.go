// backend/services/catalog_service.go
package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vayven/inspecciones/backend/config"
	"github.com/vayven/inspecciones/backend/database"
	"github.com/vayven/inspecciones/backend/models"
	"github.com/vayven/inspecciones/backend/sheets"
	"github.com/vayven/inspecciones/backend/utils"
)

// referenceCache memoizes the reference worksheets for display endpoints, with
// the same TTL posture the sheet UI had. The submission path bypasses it.
type referenceCache struct {
	mu       sync.Mutex
	loadedAt time.Time
	vehicles []models.Vehicle
	routes   []models.Route
	catalog  []models.CatalogPart
}

var displayCache referenceCache

func (c *referenceCache) load() error {
	vehicles, err := database.GetVehicles()
	if err != nil {
		return fmt.Errorf("failed to load vehicles: %w", err)
	}
	routes, err := database.GetRoutes()
	if err != nil {
		return fmt.Errorf("failed to load routes: %w", err)
	}
	partRows, err := database.GetPartRows()
	if err != nil {
		return fmt.Errorf("failed to load part rows: %w", err)
	}

	c.vehicles = vehicles
	c.routes = routes
	c.catalog = sheets.BuildPartCatalog(partRows)
	c.loadedAt = time.Now()
	log.Printf("Service: Display cache refreshed (%d vehicles, %d routes, %d catalog parts).\n",
		len(vehicles), len(routes), len(c.catalog))
	return nil
}

func (c *referenceCache) ensureFresh() error {
	ttl := config.AppConfig.Freshness.DisplayCacheTTL
	if !c.loadedAt.IsZero() && time.Since(c.loadedAt) < ttl {
		return nil
	}
	return c.load()
}

// InvalidateDisplayCache drops the memoized reference data so the next display
// read hits the database. Called after a worksheet sync and by the admin
// refresh endpoint.
func InvalidateDisplayCache() {
	displayCache.mu.Lock()
	defer displayCache.mu.Unlock()
	displayCache.loadedAt = time.Time{}
	log.Println("Service: Display cache invalidated.")
}

// GetVehiclesForDisplay returns the vehicle roster, cached.
func GetVehiclesForDisplay() ([]models.Vehicle, error) {
	displayCache.mu.Lock()
	defer displayCache.mu.Unlock()
	if err := displayCache.ensureFresh(); err != nil {
		return nil, err
	}
	return displayCache.vehicles, nil
}

// GetRoutesForDisplay returns the route list, cached.
func GetRoutesForDisplay() ([]models.Route, error) {
	displayCache.mu.Lock()
	defer displayCache.mu.Unlock()
	if err := displayCache.ensureFresh(); err != nil {
		return nil, err
	}
	return displayCache.routes, nil
}

// GetPartCatalogForDisplay returns the assembled part catalog, cached.
func GetPartCatalogForDisplay() ([]models.CatalogPart, error) {
	displayCache.mu.Lock()
	defer displayCache.mu.Unlock()
	if err := displayCache.ensureFresh(); err != nil {
		return nil, err
	}
	return displayCache.catalog, nil
}

// FreshPartCatalog reads the catalog straight from the database, skipping the
// display cache. The submission path uses this so a form submit never expands
// against stale reference data.
func FreshPartCatalog() ([]models.CatalogPart, error) {
	partRows, err := database.GetPartRows()
	if err != nil {
		return nil, fmt.Errorf("failed to load part rows: %w", err)
	}
	return sheets.BuildPartCatalog(partRows), nil
}

// ResolveRoute resolves either key of the route field group to the full group:
// pick a route by number and get its name, or by name and get its number.
// Pure lookup over the provided routes, so it is testable without a database.
func ResolveRoute(routes []models.Route, number int, name string) (*models.RouteFieldGroup, error) {
	for _, r := range routes {
		if (number != 0 && r.Number == number) || (name != "" && r.Name == name) {
			return &models.RouteFieldGroup{Number: r.Number, Name: r.Name}, nil
		}
	}
	if number != 0 {
		return nil, fmt.Errorf("no route found with numero_ruta %d", number)
	}
	return nil, fmt.Errorf("no route found with name '%s'", name)
}

// ResolveVehicle resolves any one key of the vehicle field group (economic
// number, plate, or empresa) to the full group. When keyed by empresa the first
// unit of that company wins, matching the form's selector behavior.
func ResolveVehicle(vehicles []models.Vehicle, economicNumber, plate, empresa string) (*models.VehicleFieldGroup, error) {
	economicNumber = utils.NormalizeEconomicNumber(economicNumber)
	plate = utils.NormalizePlate(plate)

	for _, v := range vehicles {
		switch {
		case economicNumber != "" && utils.NormalizeEconomicNumber(v.EconomicNumber) == economicNumber,
			plate != "" && utils.NormalizePlate(v.Plate) == plate,
			empresa != "" && v.Empresa == empresa:
			return &models.VehicleFieldGroup{
				EconomicNumber: v.EconomicNumber,
				Plate:          v.Plate,
				Empresa:        v.Empresa,
			}, nil
		}
	}
	return nil, fmt.Errorf("no vehicle found for numero_economico '%s', placa '%s', empresa '%s'", economicNumber, plate, empresa)
}

// ResolveRouteForDisplay and ResolveVehicleForDisplay resolve against the
// cached reference data, for the form-facing endpoints.
func ResolveRouteForDisplay(number int, name string) (*models.RouteFieldGroup, error) {
	routes, err := GetRoutesForDisplay()
	if err != nil {
		return nil, err
	}
	return ResolveRoute(routes, number, name)
}

func ResolveVehicleForDisplay(economicNumber, plate, empresa string) (*models.VehicleFieldGroup, error) {
	vehicles, err := GetVehiclesForDisplay()
	if err != nil {
		return nil, err
	}
	return ResolveVehicle(vehicles, economicNumber, plate, empresa)
}
