// backend/sheets/worksheet_discovery_test.go
package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vayven/inspecciones/backend/models"
)

const pubHTMLSample = `<!DOCTYPE html><html><body>
<div id="sheets-viewport"></div>
<ul id="sheet-menu">
  <li id="sheet-button-0"><a href="#">inspecciones</a></li>
  <li id="sheet-button-1528439087"><a href="#">vehiculos</a></li>
  <li id="sheet-button-90123478"><a href="#"> rutas </a></li>
  <li id="sheet-button-7741"><a href="#">partes</a></li>
  <li class="other"><a href="#">not a sheet</a></li>
</ul>
</body></html>`

func TestParseWorksheetMenu(t *testing.T) {
	t.Parallel()

	worksheets, err := ParseWorksheetMenu(strings.NewReader(pubHTMLSample), "ul#sheet-menu")
	require.NoError(t, err)

	assert.Equal(t, []models.WorksheetInfo{
		{Name: "inspecciones", Gid: "0"},
		{Name: "vehiculos", Gid: "1528439087"},
		{Name: "rutas", Gid: "90123478"},
		{Name: "partes", Gid: "7741"},
	}, worksheets, "tab names should be trimmed and ids without the sheet-button prefix skipped")
}

func TestParseWorksheetMenuNoTabs(t *testing.T) {
	t.Parallel()

	_, err := ParseWorksheetMenu(strings.NewReader("<html><body><p>nothing here</p></body></html>"), "ul#sheet-menu")
	require.Error(t, err, "a page without the sheet menu should error, not return an empty map")
	assert.Contains(t, err.Error(), "sheet-menu")
}
