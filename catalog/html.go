package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/on-the-ground/timeboard/datasets"
	"github.com/on-the-ground/timeboard/lecture"
)

// HTMLCatalog scrapes lecture listings from providers that publish them
// as web pages only. Each dataset id maps to one page URL; rows of the
// page's listing table become lectures and rows that do not parse are
// skipped.
type HTMLCatalog struct {
	pages  map[datasets.ID]string
	client *http.Client
}

func NewHTMLCatalog(pages map[datasets.ID]string) *HTMLCatalog {
	cloned := make(map[datasets.ID]string, len(pages))
	for id, url := range pages {
		cloned[id] = url
	}
	return &HTMLCatalog{
		pages: cloned,
		client: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *HTMLCatalog) FetchDataset(ctx context.Context, id datasets.ID) ([]lecture.Lecture, error) {
	url, ok := c.pages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return scrapeListing(doc), nil
}

// scrapeListing extracts one lecture per listing row. Expected columns:
// id, title, grade, credits, major, schedule descriptor. Header rows and
// rows with missing or non-numeric cells are skipped.
func scrapeListing(doc *goquery.Document) []lecture.Lecture {
	lectures := []lecture.Lecture{}
	doc.Find("table.lectures tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}
		grade, err := strconv.Atoi(cellText(cells, 2))
		if err != nil {
			return
		}
		lectures = append(lectures, lecture.Lecture{
			ID:       cellText(cells, 0),
			Title:    cellText(cells, 1),
			Grade:    grade,
			Credits:  cellText(cells, 3),
			Major:    cellText(cells, 4),
			Schedule: cellText(cells, 5),
		})
	})
	return lectures
}

func cellText(cells *goquery.Selection, i int) string {
	return strings.TrimSpace(cells.Eq(i).Text())
}
