package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dyluth/roost/internal/source"
)

// registryEntry is one record in a registry's JSON index.
type registryEntry struct {
	Address         string `json:"address"`
	Label           string `json:"label"`
	Network         string `json:"network"`
	DeclaredQuality int    `json:"declared_quality"`
}

// RegistryEnumerator fetches an endpoint index from a remote registry URL.
// The registry serves a JSON array of endpoint records.
type RegistryEnumerator struct {
	url        string
	httpClient *http.Client
}

// NewRegistryEnumerator creates an enumerator for one registry URL.
func NewRegistryEnumerator(url string) *RegistryEnumerator {
	return &RegistryEnumerator{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the enumerator in logs.
func (r *RegistryEnumerator) Name() string {
	return fmt.Sprintf("registry[%s]", r.url)
}

// Enumerate fetches and decodes the registry index. Records with invalid
// fields are rejected as a whole so a malformed registry cannot poison the
// candidate list.
func (r *RegistryEnumerator) Enumerate(ctx context.Context) ([]*source.Endpoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registry index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read registry index: %w", err)
	}

	var entries []registryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode registry index: %w", err)
	}

	endpoints := make([]*source.Endpoint, 0, len(entries))
	for i, entry := range entries {
		ep := source.New(entry.Address, entry.Label, entry.Network, entry.DeclaredQuality)
		if err := ep.Validate(); err != nil {
			return nil, fmt.Errorf("invalid registry entry at index %d: %w", i, err)
		}
		endpoints = append(endpoints, ep)
	}

	return endpoints, nil
}
