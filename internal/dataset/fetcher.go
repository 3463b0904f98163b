package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/teamlens/teamlens/pkg/types"
)

// ErrFetchCircuitOpen is returned while the fetcher's circuit breaker is
// rejecting requests after repeated upstream failures.
var ErrFetchCircuitOpen = errors.New("dataset: fetch circuit open")

// Fetcher pulls the team export from a remote URL, guarded by a circuit
// breaker so a flaky export endpoint cannot wedge every reload attempt.
// Three consecutive failures open the circuit for thirty seconds.
type Fetcher struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewFetcher creates a fetcher for the given export URL.
func NewFetcher(url string) *Fetcher {
	settings := gobreaker.Settings{
		Name:    "DatasetFetcher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &Fetcher{
		url:     url,
		client:  &http.Client{Timeout: 30 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Fetch downloads and parses the export. While the circuit is open it
// returns ErrFetchCircuitOpen without touching the network.
func (f *Fetcher) Fetch(ctx context.Context) ([]types.Team, []byte, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, nil, ErrFetchCircuitOpen
		}
		return nil, nil, err
	}
	data := result.([]byte)
	teams, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return teams, data, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dataset: build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset: fetch %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset: fetch %s: unexpected status %d", f.url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dataset: read response: %w", err)
	}
	return data, nil
}
