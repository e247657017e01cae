package solat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const citySelector = "select#cityid, select[name=cityid]"

// WebParser reads the city directory out of the public prayer-times page.
type WebParser struct {
	HTTPClient *http.Client
}

func (wp *WebParser) GetRawData(ctx context.Context, url string) (string, error) {
	client := wp.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

func (wp *WebParser) Parse(html string) ([]City, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	selectEl := doc.Find(citySelector).First()
	if selectEl.Length() == 0 {
		return nil, fmt.Errorf("no city select element found")
	}

	return wp.parseCities(selectEl), nil
}

func (wp *WebParser) parseCities(s *goquery.Selection) []City {
	var cities []City
	s.Find("option").Each(func(i int, opt *goquery.Selection) {
		id, err := strconv.Atoi(strings.TrimSpace(opt.AttrOr("value", "")))
		if err != nil || id <= 0 {
			// placeholder entries like "Select city"
			return
		}
		cities = append(cities, City{
			ID:   id,
			Name: wp.cleanName(opt.Text()),
		})
	})
	return cities
}

func (wp *WebParser) cleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
