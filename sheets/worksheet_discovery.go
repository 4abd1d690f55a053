// backend/sheets/worksheet_discovery.go
package sheets

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/vayven/inspecciones/backend/config"
	"github.com/vayven/inspecciones/backend/models"
)

// Tab ids on the published page look like "sheet-button-123456789"; the numeric
// suffix is the gid the CSV export URL needs.
const sheetButtonIDPrefix = "sheet-button-"

// ParseWorksheetMenu extracts (name, gid) pairs from the sheet menu of a
// published-spreadsheet HTML page. menuSelector is typically "ul#sheet-menu".
func ParseWorksheetMenu(body io.Reader, menuSelector string) ([]models.WorksheetInfo, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse published sheet HTML: %w", err)
	}

	var worksheets []models.WorksheetInfo
	doc.Find(menuSelector).Find("li").Each(func(i int, liSelection *goquery.Selection) {
		id, exists := liSelection.Attr("id")
		if !exists || !strings.HasPrefix(id, sheetButtonIDPrefix) {
			return
		}
		gid := strings.TrimPrefix(id, sheetButtonIDPrefix)
		name := strings.TrimSpace(liSelection.Find("a").First().Text())
		if name == "" || gid == "" {
			return
		}
		worksheets = append(worksheets, models.WorksheetInfo{Name: name, Gid: gid})
	})

	if len(worksheets) == 0 {
		return nil, fmt.Errorf("no worksheet tabs found with selector '%s'. QC: Verify the menu selector and that the spreadsheet is published to the web", menuSelector)
	}
	return worksheets, nil
}

// DiscoverWorksheets fetches the published spreadsheet page and returns a map
// of worksheet name to gid. The gids are what the CSV downloader needs; the
// names are matched against the worksheets section of the config.
func DiscoverWorksheets() (map[string]string, error) {
	pageURL := config.AppConfig.Sheet.PubHTMLURL
	if pageURL == "" {
		return nil, fmt.Errorf("sheet pubhtml URL is not configured")
	}
	menuSelector := config.AppConfig.Sheet.SheetMenuSelector
	log.Printf("Sheets: Discovering worksheet tabs from %s (selector: '%s')\n", pageURL, menuSelector)

	client := http.Client{Timeout: 20 * time.Second}
	res, err := client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get URL %s: status code %d", pageURL, res.StatusCode)
	}

	worksheets, err := ParseWorksheetMenu(res.Body, menuSelector)
	if err != nil {
		return nil, err
	}

	gidsByName := make(map[string]string, len(worksheets))
	for _, ws := range worksheets {
		gidsByName[ws.Name] = ws.Gid
	}
	log.Printf("Sheets: Discovered %d worksheet tabs: %v\n", len(worksheets), worksheetNames(worksheets))
	return gidsByName, nil
}

func worksheetNames(worksheets []models.WorksheetInfo) []string {
	names := make([]string, 0, len(worksheets))
	for _, ws := range worksheets {
		names = append(names, ws.Name)
	}
	return names
}
