package fundamentus

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/logger"
)

const screenerPath = "/resultado.php"

// ErrTableNotFound is returned when the screener page has no results table.
var ErrTableNotFound = errors.New("fundamentus: results table not found")

// FetchTable downloads the screener page and returns the raw results table.
func (c *Client) FetchTable(ctx context.Context) (models.RawTable, error) {
	doc, err := c.getDocument(ctx, screenerPath, nil)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("fetch screener: %w", err)
	}
	raw, err := ParseScreener(doc)
	if err != nil {
		return models.RawTable{}, err
	}
	logger.L().Info().Int("columns", len(raw.Headers)).Int("rows", len(raw.Rows)).Msg("screener fetched")
	return raw, nil
}

// ParseScreener extracts table#resultado: header texts from the first row
// of th cells, then one record per body row.
func ParseScreener(doc *goquery.Document) (models.RawTable, error) {
	table := doc.Find("table#resultado").First()
	if table.Length() == 0 {
		return models.RawTable{}, ErrTableNotFound
	}

	var raw models.RawTable
	table.Find("tr").Has("th").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		raw.Headers = append(raw.Headers, cellText(th))
	})
	if len(raw.Headers) == 0 {
		return models.RawTable{}, fmt.Errorf("%w: no header row", ErrTableNotFound)
	}

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make([]string, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			row = append(row, cellText(td))
		})
		raw.Rows = append(raw.Rows, row)
	})

	return raw, nil
}
