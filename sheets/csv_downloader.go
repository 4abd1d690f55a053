// backend/sheets/csv_downloader.go
package sheets

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vayven/inspecciones/backend/config"
)

// DownloadFile is a utility function to download a file from a URL and save it
// to a local path. It returns an error if any step fails.
func DownloadFile(url string, localSavePath string) error {
	log.Printf("Sheets: Attempting to download file from URL: %s to local path: %s\n", url, localSavePath)

	client := http.Client{
		Timeout: 30 * time.Second, // Sensible timeout for a worksheet download
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file from %s: received status code %d", url, resp.StatusCode)
	}

	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to copy downloaded content to %s: %w", localSavePath, err)
	}

	log.Printf("Sheets: Successfully downloaded %s to %s\n", url, localSavePath)
	return nil
}

// WorksheetExportURL builds the CSV export URL for a worksheet tab gid, using
// the csv_export_url template from config.
func WorksheetExportURL(gid string) (string, error) {
	template := config.AppConfig.Sheet.CSVExportURL
	if template == "" {
		return "", fmt.Errorf("sheet CSV export URL is not configured")
	}
	return fmt.Sprintf(template, gid), nil
}

// DownloadWorksheetCSV downloads the published CSV export of one worksheet tab
// and saves it under the configured local CSV directory as <name>.csv.
// It returns the local path of the downloaded file or an error.
func DownloadWorksheetCSV(worksheetName, gid string) (string, error) {
	if worksheetName == "" {
		return "", fmt.Errorf("worksheet name is empty")
	}
	if gid == "" {
		return "", fmt.Errorf("no gid known for worksheet %s", worksheetName)
	}

	url, err := WorksheetExportURL(gid)
	if err != nil {
		return "", err
	}
	localPath := filepath.Join(config.AppConfig.LocalCSV.Dir, worksheetName+".csv")

	if err := DownloadFile(url, localPath); err != nil {
		return "", fmt.Errorf("failed to download worksheet %s: %w", worksheetName, err)
	}
	return localPath, nil
}
