package fundamentus

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/guttosm/b3rank/internal/domain/models"
)

const detailsPath = "/detalhes.php"

// ErrTickerNotFound is returned when the detail page has no data tables,
// which is how the site answers unknown tickers.
var ErrTickerNotFound = errors.New("fundamentus: ticker not found")

// FetchTicker downloads the detail page of ticker and extracts its metadata.
func (c *Client) FetchTicker(ctx context.Context, ticker string) (models.TickerMetadata, error) {
	doc, err := c.getDocument(ctx, detailsPath, url.Values{"papel": {ticker}})
	if err != nil {
		return models.TickerMetadata{}, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	md, err := ParseDetails(doc)
	if err != nil {
		return models.TickerMetadata{}, fmt.Errorf("parse %s: %w", ticker, err)
	}
	if md.Ticker == "" {
		md.Ticker = ticker
	}
	return md, nil
}

// ParseDetails reads the overview table (the first table on the page). Each
// row alternates label and value cells; a value is the cell right after its
// label.
func ParseDetails(doc *goquery.Document) (models.TickerMetadata, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return models.TickerMetadata{}, ErrTickerNotFound
	}

	values := map[string]string{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		for i := 0; i+1 < cells.Length(); i += 2 {
			label := normalizeLabel(labelText(cells.Eq(i)))
			if label == "" {
				continue
			}
			values[label] = cellText(cells.Eq(i + 1))
		}
	})

	md := models.TickerMetadata{
		Ticker:      values["papel"],
		CompanyName: values["empresa"],
		Sector:      values["setor"],
		Subsector:   values["subsetor"],
		LastQuote:   values["data últ cot"],
	}
	if md.Ticker == "" && md.CompanyName == "" {
		return models.TickerMetadata{}, ErrTickerNotFound
	}
	return md, nil
}

// labelText prefers the span.txt inside a label cell, skipping the "?" help marker.
func labelText(td *goquery.Selection) string {
	if txt := td.Find("span.txt"); txt.Length() > 0 {
		return cellText(txt)
	}
	return strings.TrimPrefix(cellText(td), "?")
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
