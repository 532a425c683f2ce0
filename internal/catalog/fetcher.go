package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ms-venue/internal/logger"
	"ms-venue/internal/models"
)

type Sources struct {
	TeamsURL    string
	StadiumsURL string
	MatchesURL  string
}

// Fetcher downloads the three catalog collections over HTTP.
type Fetcher struct {
	client *http.Client
	logger *logger.Logger
}

func NewFetcher(client *http.Client, log *logger.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, logger: log}
}

// FetchRecords pulls every collection. A collection that cannot be fetched
// is left empty; the returned error joins every failure and wraps
// models.ErrUpstreamUnavailable.
func (f *Fetcher) FetchRecords(ctx context.Context, src Sources) (Records, error) {
	var records Records
	var errs []error

	if err := f.fetchJSON(ctx, src.TeamsURL, &records.Teams); err != nil {
		f.logger.Error("CATALOG", fmt.Sprintf("Failed to load teams: %v", err))
		records.Teams = nil
		errs = append(errs, fmt.Errorf("teams: %w", err))
	}
	if err := f.fetchJSON(ctx, src.StadiumsURL, &records.Stadiums); err != nil {
		f.logger.Error("CATALOG", fmt.Sprintf("Failed to load stadiums: %v", err))
		records.Stadiums = nil
		errs = append(errs, fmt.Errorf("stadiums: %w", err))
	}
	if err := f.fetchJSON(ctx, src.MatchesURL, &records.Matches); err != nil {
		f.logger.Error("CATALOG", fmt.Sprintf("Failed to load matches: %v", err))
		records.Matches = nil
		errs = append(errs, fmt.Errorf("matches: %w", err))
	}

	if len(errs) > 0 {
		return records, upstreamError(errs)
	}
	return records, nil
}

func (f *Fetcher) fetchJSON(ctx context.Context, url string, out any) error {
	if url == "" {
		return fmt.Errorf("%w: empty url", models.ErrUpstreamUnavailable)
	}
	f.logger.Debug("CATALOG", fmt.Sprintf("Fetching %s", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			f.logger.Error("CATALOG", fmt.Sprintf("Failed to close catalog response body: %v", err))
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", models.ErrUpstreamUnavailable, url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}
