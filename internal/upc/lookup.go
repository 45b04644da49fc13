// Package upc resolves barcodes to product titles through external databases.
// Lookups are best effort: callers always get a usable result.
package upc

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrInvalidCode = errors.New("Valid UPC required")

// Result is the lookup answer returned to the dashboard
type Result struct {
	Found       bool   `json:"found"`
	UPC         string `json:"upc"`
	Title       string `json:"title"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Source      string `json:"source,omitempty"`
}

type Service struct {
	providers []Provider
}

// NewService tries providers in the given order
func NewService(providers ...Provider) *Service {
	return &Service{providers: providers}
}

// Lookup returns the first provider hit, or a placeholder when nobody knows the code.
// The only error is ErrInvalidCode for input too short to be a barcode.
func (s *Service) Lookup(raw string) (*Result, error) {
	code := Normalize(raw)
	if !Valid(code) {
		return nil, ErrInvalidCode
	}

	for _, p := range s.providers {
		product, err := p.Lookup(code)
		if err != nil {
			logrus.Warnf("upc: %s lookup for %s failed: %v", p.Name(), code, err)
			continue
		}
		if product == nil {
			continue
		}
		logrus.Infof("upc: %s found %s -> %s", p.Name(), code, product.Title)
		return &Result{
			Found:       true,
			UPC:         code,
			Title:       product.Title,
			Brand:       product.Brand,
			Category:    product.Category,
			Description: product.Description,
			Image:       product.Image,
			Source:      p.Name(),
		}, nil
	}

	logrus.Infof("upc: no product found for %s", code)
	return &Result{
		Found: false,
		UPC:   code,
		Title: PlaceholderName(code),
	}, nil
}
