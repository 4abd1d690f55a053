// backend/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/vayven/inspecciones/backend/config"
	"github.com/vayven/inspecciones/backend/database"
	"github.com/vayven/inspecciones/backend/handlers"
	"github.com/vayven/inspecciones/backend/services"
)

func main() {
	log.Println("Starting Va-y-Ven Inspections Backend Application...")

	configPath := "backend/config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config/config.yaml"
		if _, errFallback := os.Stat(configPath); os.IsNotExist(errFallback) {
			log.Fatalf("Config file not found at default paths. Error: %v", errFallback)
		}
	}

	err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, DB name: %s",
		config.AppConfig.Server.Port, config.AppConfig.Database.DBName)
	log.Printf("Published sheet URL: %s", config.AppConfig.Sheet.PubHTMLURL)
	log.Printf("Display cache TTL: %s", config.AppConfig.Freshness.DisplayCacheTTL)

	err = database.InitDB(config.AppConfig.Database)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.CloseDB()

	// Seed worksheet gids from the last recorded syncs.
	services.InitWorksheetGids()

	// --- Setup HTTP routes ---
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.DB.Ping(); err != nil {
			http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
			log.Printf("Health check failed: DB ping error: %v", err)
			return
		}
		fmt.Fprintln(w, `{"status": "ok", "message": "inspections backend is healthy"}`)
	})

	// Inspection form endpoints
	http.HandleFunc("/api/inspections", handlers.SubmitInspectionHandler)
	http.HandleFunc("/api/inspections/export.csv", handlers.ExportInspectionsHandler)
	http.HandleFunc("/api/inspections/damage-history", handlers.DamageHistoryHandler)

	// Reference data for form population and the roster view
	http.HandleFunc("/api/vehicles", handlers.VehiclesHandler)
	http.HandleFunc("/api/vehicles/resolve", handlers.ResolveVehicleHandler)
	http.HandleFunc("/api/routes", handlers.RoutesHandler)
	http.HandleFunc("/api/routes/resolve", handlers.ResolveRouteHandler)
	http.HandleFunc("/api/parts", handlers.PartsHandler)

	// Admin routes for mirroring the spreadsheet and checking data health
	http.HandleFunc("/api/admin/sync-sheets/", handlers.SyncWorksheetsHandler) // Path ends with / to catch sub-paths
	http.HandleFunc("/api/admin/refresh-cache", handlers.RefreshCacheHandler)
	http.HandleFunc("/api/admin/integrity-check", handlers.IntegrityCheckHandler)
	http.HandleFunc("/api/admin/data-status", handlers.DataStatusHandler)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	err = http.ListenAndServe(serverAddr, nil)
	if err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
