package fipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/simaogato/fipify-backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public FIPE table mirror
	DefaultBaseURL = "https://parallelum.com.br/fipe/api/v1"

	// DefaultVehicleType selects passenger cars
	DefaultVehicleType = "carros"

	maxErrorBody = 512
)

// VehicleTypes lists the vehicle types the table serves
var VehicleTypes = []string{"carros", "motos", "caminhoes"}

// Config holds the client settings
type Config struct {
	BaseURL           string
	VehicleType       string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// Client implements domain.ValuationSource over the FIPE HTTP API
// Every request waits on a shared token bucket before it is sent
type Client struct {
	baseURL     string
	vehicleType string
	http        *http.Client
	limiter     *rate.Limiter
}

// NewClient creates a new Client instance
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.VehicleType == "" {
		cfg.VehicleType = DefaultVehicleType
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		vehicleType: cfg.VehicleType,
		http:        &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// code decodes an identifier the API sends either as a JSON string or a JSON number
type code string

func (c *code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = code(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("code must be a string or a number: %w", err)
	}
	*c = code(n.String())
	return nil
}

type catalogEntry struct {
	Code code   `json:"codigo"`
	Name string `json:"nome"`
}

type modelsResponse struct {
	Models []catalogEntry `json:"modelos"`
}

type vehicleResponse struct {
	Price          string `json:"Valor"`
	Brand          string `json:"Marca"`
	Model          string `json:"Modelo"`
	ModelYear      code   `json:"AnoModelo"`
	FuelType       string `json:"Combustivel"`
	ReferenceCode  string `json:"CodigoFipe"`
	ReferenceMonth string `json:"MesReferencia"`
}

// Brands lists every brand of the configured vehicle type
func (c *Client) Brands(ctx context.Context) ([]domain.CatalogItem, error) {
	var entries []catalogEntry
	if err := c.get(ctx, &entries, c.vehicleType, "marcas"); err != nil {
		return nil, err
	}
	return toCatalog(entries), nil
}

// Models lists the models of a brand
func (c *Client) Models(ctx context.Context, brandCode string) ([]domain.CatalogItem, error) {
	var resp modelsResponse
	if err := c.get(ctx, &resp, c.vehicleType, "marcas", brandCode, "modelos"); err != nil {
		return nil, err
	}
	return toCatalog(resp.Models), nil
}

// Years lists the model years of a model
func (c *Client) Years(ctx context.Context, brandCode, modelCode string) ([]domain.CatalogItem, error) {
	var entries []catalogEntry
	if err := c.get(ctx, &entries, c.vehicleType, "marcas", brandCode, "modelos", modelCode, "anos"); err != nil {
		return nil, err
	}
	return toCatalog(entries), nil
}

// Vehicle performs the price lookup for one brand/model/year
func (c *Client) Vehicle(ctx context.Context, brandCode, modelCode, yearCode string) (*domain.RawValuation, error) {
	var resp vehicleResponse
	if err := c.get(ctx, &resp, c.vehicleType, "marcas", brandCode, "modelos", modelCode, "anos", yearCode); err != nil {
		return nil, err
	}

	return &domain.RawValuation{
		Brand:          resp.Brand,
		Model:          resp.Model,
		ModelYear:      string(resp.ModelYear),
		Price:          resp.Price,
		FuelType:       resp.FuelType,
		ReferenceCode:  resp.ReferenceCode,
		ReferenceMonth: resp.ReferenceMonth,
	}, nil
}

func (c *Client) get(ctx context.Context, out any, segments ...string) error {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := c.baseURL + "/" + strings.Join(escaped, "/")

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", domain.ErrSourceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: GET %s: status %d: %s",
			domain.ErrSourceUnavailable, u, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrSourceUnavailable, u, err)
	}
	return nil
}

func toCatalog(entries []catalogEntry) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.CatalogItem{Code: string(e.Code), Name: e.Name})
	}
	return items
}

// ValidVehicleType reports whether t is served by the table
func ValidVehicleType(t string) bool {
	return slices.Contains(VehicleTypes, t)
}
