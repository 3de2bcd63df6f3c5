package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance API. It wraps an HTTP client and provides convenient methods for
// querying stock prices and news headlines.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client.
// The timeout bounds every outbound request made through the client.
//
// Parameters:
//   - timeout: Maximum duration for a single HTTP request
//
// Returns:
//   - *FinanceClient: A new client instance ready for use
func NewFinanceClient(timeout time.Duration) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// QueryChart fetches daily price data for a symbol over a Yahoo range string.
// The range uses Yahoo's range-based query format (e.g. "5d", "1mo", "3mo")
// which automatically selects the most recent trading days.
//
// Parameters:
//   - ctx: Context for cancellation and deadlines
//   - symbol: Stock ticker symbol (e.g., "QDTE")
//   - rng: Yahoo range string (e.g., "5d", "1mo")
//
// Returns:
//   - ChartResponse: Raw API response containing price data
//   - error: If the HTTP request fails, the API returns an error, or no results found
func (c *FinanceClient) QueryChart(ctx context.Context, symbol, rng string) (ChartResponse, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s", symbol, rng)

	var response ChartResponse
	if err := c.getJSON(ctx, u, &response); err != nil {
		return ChartResponse{}, err
	}
	if response.Chart.Error != nil {
		return ChartResponse{}, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return ChartResponse{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return response, nil
}

// QueryNews fetches recent news headlines mentioning a symbol.
// The method uses Yahoo Finance's search endpoint, which returns up to the
// requested number of news items ordered most recent first.
//
// Parameters:
//   - ctx: Context for cancellation and deadlines
//   - symbol: Stock ticker symbol to search for
//   - count: Maximum number of headlines to request
//
// Returns:
//   - NewsResponse: Raw API response containing news items
//   - error: If the HTTP request fails or the response cannot be parsed
func (c *FinanceClient) QueryNews(ctx context.Context, symbol string, count int) (NewsResponse, error) {
	u := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		url.QueryEscape(symbol),
		count,
	)

	var response NewsResponse
	if err := c.getJSON(ctx, u, &response); err != nil {
		return NewsResponse{}, err
	}

	return response, nil
}

// getJSON is an internal helper that executes HTTP GET requests against the
// Yahoo Finance API and decodes the JSON body into out.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}
