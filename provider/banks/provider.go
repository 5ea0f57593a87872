package banks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sig-0/bankcaps/storage/types"
)

// DefaultURL is the archived largest banks listing
const DefaultURL = "https://web.archive.org/web/20230908091635/https://en.wikipedia.org/wiki/List_of_largest_banks"

const userAgent = "bankcaps/1.0 (+https://github.com/sig-0/bankcaps)"

// Provider is the largest banks page scraping provider
type Provider struct {
	client  *http.Client
	scanner *Scanner
	url     string
}

// NewProvider creates a new instance of the largest banks page provider
func NewProvider(url string, timeout time.Duration, scanner *Scanner) *Provider {
	if scanner == nil {
		scanner = NewScanner()
	}

	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		scanner: scanner,
		url:     url,
	}
}

func (p *Provider) Name() string {
	return "Largest Banks"
}

func (p *Provider) Fetch(ctx context.Context) ([]*types.Bank, error) {
	// Prepare the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	// Execute the request
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	// Construct document for parsing
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to construct query doc: %w", err)
	}

	return p.scanner.Scan(doc), nil
}
