package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tempreco/ponto-backend-go/internal/config"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

const (
	AddressNotFound      = "Endereço não encontrado"
	NeighborhoodNotFound = "Bairro não encontrado"
	StateNotFound        = "Estado não encontrado"

	AddressUnavailable      = "Endereço não disponível"
	NeighborhoodUnavailable = "Bairro não disponível"
	StateUnavailable        = "Estado não disponível"
)

var ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")

// Address is the simplified form shown next to a clock mark.
type Address struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	State        string  `json:"state"`
	Resolved     bool    `json:"resolved"`
}

// Unavailable is served when the upstream lookup fails.
func Unavailable(lat, lng float64) Address {
	return Address{
		Lat:          lat,
		Lng:          lng,
		Address:      AddressUnavailable,
		Neighborhood: NeighborhoodUnavailable,
		State:        StateUnavailable,
	}
}

type nominatimResponse struct {
	Address struct {
		Road          string `json:"road"`
		HouseNumber   string `json:"house_number"`
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
		State         string `json:"state"`
	} `json:"address"`
}

// Client performs reverse lookups against a Nominatim compatible API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(cfg config.GeocodeConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func ValidateCoordinates(lat, lng float64) error {
	if !validator.IsValidCoordinate(lat, lng) {
		return ErrInvalidCoordinates
	}
	return nil
}

// Reverse resolves a coordinate pair. Missing parts of the upstream
// address are replaced by the "not found" texts.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (Address, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return Address{}, err
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Address{}, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("geocode request failed with status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	return simplify(lat, lng, body), nil
}

func simplify(lat, lng float64, body nominatimResponse) Address {
	a := body.Address

	street := a.Road
	if street != "" && a.HouseNumber != "" {
		street += ", " + a.HouseNumber
	}
	neighborhood := a.Suburb
	if neighborhood == "" {
		neighborhood = a.Neighbourhood
	}

	out := Address{
		Lat:          lat,
		Lng:          lng,
		Resolved:     true,
		Address:      street,
		Neighborhood: neighborhood,
		State:        a.State,
	}
	if out.Address == "" {
		out.Address = AddressNotFound
	}
	if out.Neighborhood == "" {
		out.Neighborhood = NeighborhoodNotFound
	}
	if out.State == "" {
		out.State = StateNotFound
	}
	return out
}
