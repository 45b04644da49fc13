package upc

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Product is what a provider knows about a code
type Product struct {
	Title       string
	Brand       string
	Category    string
	Description string
	Image       string
}

// Provider is one external product database.
// Lookup returns (nil, nil) when the database has no entry for the code.
type Provider interface {
	Name() string
	Lookup(code string) (*Product, error)
}

func getJSON(rawURL string, timeout time.Duration, v interface{}) error {
	agent := fiber.Get(rawURL)
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	status, _, errs := agent.Struct(v)
	if status >= 500 {
		return fmt.Errorf("GET %s: status %d", rawURL, status)
	}
	if len(errs) > 0 {
		return fmt.Errorf("GET %s: %w", rawURL, errs[0])
	}
	return nil
}

// UPCItemDB queries the upcitemdb.com trial API
type UPCItemDB struct {
	BaseURL string
	Timeout time.Duration
}

type upcItemDBResponse struct {
	Code  string `json:"code"`
	Items []struct {
		Title       string   `json:"title"`
		Brand       string   `json:"brand"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
	} `json:"items"`
}

func (p *UPCItemDB) Name() string { return "upcitemdb" }

func (p *UPCItemDB) Lookup(code string) (*Product, error) {
	endpoint := strings.TrimRight(p.BaseURL, "/") + "/prod/trial/lookup?upc=" + url.QueryEscape(code)

	var payload upcItemDBResponse
	if err := getJSON(endpoint, p.Timeout, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, nil
	}

	item := payload.Items[0]
	product := &Product{
		Title:       item.Title,
		Brand:       item.Brand,
		Category:    item.Category,
		Description: item.Description,
	}
	if len(item.Images) > 0 {
		product.Image = item.Images[0]
	}
	if product.Title == "" {
		product.Title = PlaceholderPrefix
	}
	return product, nil
}

// OpenFoodFacts queries world.openfoodfacts.org, the fallback for grocery items
type OpenFoodFacts struct {
	BaseURL string
	Timeout time.Duration
}

type openFoodFactsResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName string `json:"product_name"`
		GenericName string `json:"generic_name"`
		Brands      string `json:"brands"`
		Categories  string `json:"categories"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

func (p *OpenFoodFacts) Name() string { return "openfoodfacts" }

func (p *OpenFoodFacts) Lookup(code string) (*Product, error) {
	endpoint := strings.TrimRight(p.BaseURL, "/") + "/api/v0/product/" + url.PathEscape(code) + ".json"

	var payload openFoodFactsResponse
	if err := getJSON(endpoint, p.Timeout, &payload); err != nil {
		return nil, err
	}
	if payload.Status != 1 || payload.Product == nil {
		return nil, nil
	}

	title := payload.Product.ProductName
	if title == "" {
		title = payload.Product.GenericName
	}
	if title == "" {
		title = PlaceholderPrefix
	}
	return &Product{
		Title:    title,
		Brand:    payload.Product.Brands,
		Category: payload.Product.Categories,
		Image:    payload.Product.ImageURL,
	}, nil
}
