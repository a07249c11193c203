package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/models"
)

// Normalized is the canonical form of a free-text location, with the
// country carried for region validation.
type Normalized struct {
	Location models.Location
	Country  string
}

// Resolver resolves free-text area/city/district into canonical form.
type Resolver interface {
	Resolve(ctx context.Context, area, city, district string) (*Normalized, error)
}

// RegionResolver wraps any Resolver with the supported-region check,
// turning an out-of-region result into a validation error.
type RegionResolver struct {
	inner  Resolver
	region string
}

func NewRegionResolver(inner Resolver, region string) *RegionResolver {
	return &RegionResolver{inner: inner, region: region}
}

func (r *RegionResolver) Resolve(ctx context.Context, area, city, district string) (*Normalized, error) {
	normalized, err := r.inner.Resolve(ctx, area, city, district)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(normalized.Country, r.region) {
		return nil, apperr.Validation(fmt.Sprintf("location must be inside %s", r.region))
	}
	return normalized, nil
}

// GeocodeClient resolves locations against a Nominatim-style HTTP endpoint.
type GeocodeClient struct {
	baseURL string
	client  *http.Client
}

func NewGeocodeClient(baseURL string) *GeocodeClient {
	return &GeocodeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResult struct {
	Address struct {
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
		City          string `json:"city"`
		Town          string `json:"town"`
		County        string `json:"county"`
		StateDistrict string `json:"state_district"`
		Country       string `json:"country"`
	} `json:"address"`
}

func (g *GeocodeClient) Resolve(ctx context.Context, area, city, district string) (*Normalized, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("limit", "1")
	query.Set("q", strings.Join([]string{area, city, district}, ", "))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, apperr.External("location lookup failed", err)
	}
	req.Header.Set("User-Agent", "careernest/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperr.External("location lookup failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.External(fmt.Sprintf("location lookup returned status %d", resp.StatusCode), nil)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, apperr.External("location lookup returned malformed response", err)
	}
	if len(results) == 0 {
		return nil, apperr.Validation("location could not be resolved")
	}

	addr := results[0].Address
	normalized := &Normalized{
		Location: models.Location{
			Area:     firstNonEmpty(addr.Suburb, addr.Neighbourhood, area),
			City:     firstNonEmpty(addr.City, addr.Town, city),
			District: firstNonEmpty(addr.County, addr.StateDistrict, district),
		},
		Country: addr.Country,
	}
	return normalized, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
