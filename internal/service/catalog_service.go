package service

import (
	"context"
	"fmt"
	"time"

	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/upc"

	"github.com/sirupsen/logrus"
)

// UPCLookup resolves a barcode to product details
type UPCLookup interface {
	Lookup(code string) (*upc.Result, error)
}

type CatalogService interface {
	LookupUPC(code string) (*upc.Result, error)
	BackfillProductNames(ctx context.Context) (*BackfillReport, error)
}

type BackfillReport struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	UpdatedCount int      `json:"updatedCount"`
	TotalCount   int      `json:"totalCount"`
	Errors       []string `json:"errors,omitempty"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	lookup      UPCLookup
	delay       time.Duration
}

// NewCatalogService paces backfill lookups by delay to stay inside provider rate limits
func NewCatalogService(productRepo repository.ProductRepository, lookup UPCLookup, delay time.Duration) CatalogService {
	return &catalogService{productRepo: productRepo, lookup: lookup, delay: delay}
}

func (s *catalogService) LookupUPC(code string) (*upc.Result, error) {
	res, err := s.lookup.Lookup(code)
	if err != nil {
		return nil, validationError("%s", err.Error())
	}
	return res, nil
}

// BackfillProductNames renames products still carrying the placeholder name
// once a provider recognises their UPC.
func (s *catalogService) BackfillProductNames(ctx context.Context) (*BackfillReport, error) {
	products, err := s.productRepo.FindByNamePrefixWithUPC(upc.PlaceholderPrefix)
	if err != nil {
		return nil, err
	}
	logrus.Infof("backfill: %d products with placeholder names", len(products))

	report := &BackfillReport{TotalCount: len(products)}
	for i, product := range products {
		// LIKE ignores case on some dialects
		if !upc.IsPlaceholderName(product.Name) {
			report.TotalCount--
			continue
		}
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				report.Errors = append(report.Errors, ctx.Err().Error())
				return s.finish(report), nil
			case <-time.After(s.delay):
			}
		}

		code := *product.UPC
		res, err := s.lookup.Lookup(code)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Product %s: %v", code, err))
			continue
		}
		if !res.Found {
			logrus.Debugf("backfill: no product info found for %s", code)
			continue
		}

		description := product.Description
		if res.Brand != "" {
			description = "Brand: " + res.Brand
		}
		if err := s.productRepo.UpdateNameAndDescription(product.ID, res.Title, description); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Product %s: %v", code, err))
			continue
		}
		logrus.Infof("backfill: updated %s -> %s", code, res.Title)
		report.UpdatedCount++
	}

	return s.finish(report), nil
}

func (s *catalogService) finish(report *BackfillReport) *BackfillReport {
	report.Success = true
	report.Message = fmt.Sprintf("Updated %d out of %d products", report.UpdatedCount, report.TotalCount)
	return report
}
