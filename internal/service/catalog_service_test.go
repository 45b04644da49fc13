package service

import (
	"context"
	"errors"
	"testing"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/upc"
)

type stubLookup map[string]*upc.Result

func (s stubLookup) Lookup(code string) (*upc.Result, error) {
	if code == "broken" {
		return nil, errors.New("upstream exploded")
	}
	if res, ok := s[code]; ok {
		return res, nil
	}
	return &upc.Result{Found: false, UPC: code, Title: upc.PlaceholderName(code)}, nil
}

func TestBackfillProductNames(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewProductRepo(db)
	client := seedClient(t, db, "ACME")

	create := func(name string, code *string) *model.Product {
		p := &model.Product{Name: name, SKU: name, UPC: code, ClientID: client.ID}
		if err := repo.Create(p); err != nil {
			t.Fatal(err)
		}
		return p
	}
	known := create(upc.PlaceholderName("884912129512"), strPtr("884912129512"))
	unknown := create(upc.PlaceholderName("000000000000"), strPtr("000000000000"))
	broken := create(upc.PlaceholderName("broken"), strPtr("broken"))
	named := create("Suave Hand Soap", strPtr("079400490896"))
	create(upc.PlaceholderName("none"), nil)

	lookup := stubLookup{
		"884912129512": {Found: true, Title: "Cocoa Pebbles", Brand: "Post"},
		"079400490896": {Found: true, Title: "Should not be used"},
	}
	svc := NewCatalogService(repo, lookup, 0)

	report, err := svc.BackfillProductNames(context.Background())
	if err != nil {
		t.Fatalf("BackfillProductNames: %v", err)
	}
	if report.TotalCount != 3 || report.UpdatedCount != 1 || len(report.Errors) != 1 || !report.Success {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Message != "Updated 1 out of 3 products" {
		t.Fatalf("unexpected message %q", report.Message)
	}

	reload := func(p *model.Product) *model.Product {
		got, err := repo.FindByID(p.ID)
		if err != nil {
			t.Fatal(err)
		}
		return got
	}
	if got := reload(known); got.Name != "Cocoa Pebbles" || got.Description != "Brand: Post" {
		t.Fatalf("known product not renamed: %+v", got)
	}
	if got := reload(unknown); !upc.IsPlaceholderName(got.Name) {
		t.Fatalf("unknown product renamed: %+v", got)
	}
	if got := reload(broken); !upc.IsPlaceholderName(got.Name) {
		t.Fatalf("failed lookup renamed product: %+v", got)
	}
	if got := reload(named); got.Name != "Suave Hand Soap" {
		t.Fatalf("named product touched: %+v", got)
	}
}

func TestLookupUPCInvalidCode(t *testing.T) {
	svc := NewCatalogService(nil, upc.NewService(), 0)

	_, err := svc.LookupUPC("123")
	se := expectKind(t, err, ErrValidation)
	if se.Message != "Valid UPC required" {
		t.Fatalf("unexpected message %q", se.Message)
	}

	res, err := svc.LookupUPC("884912129512")
	if err != nil || res.Found || res.Title != "Unknown Product - UPC 884912129512" {
		t.Fatalf("expected placeholder, got %+v, %v", res, err)
	}
}
