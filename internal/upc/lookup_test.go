package upc

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubProvider struct {
	name    string
	product *Product
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Lookup(code string) (*Product, error) {
	s.calls++
	return s.product, s.err
}

func TestLookupPrefersFirstProvider(t *testing.T) {
	primary := &stubProvider{name: "primary", product: &Product{Title: "Cocoa Pebbles", Brand: "Post"}}
	secondary := &stubProvider{name: "secondary", product: &Product{Title: "Other"}}

	res, err := NewService(primary, secondary).Lookup("884912129512")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found || res.Title != "Cocoa Pebbles" || res.Source != "primary" {
		t.Fatalf("unexpected result %+v", res)
	}
	if secondary.calls != 0 {
		t.Fatal("secondary provider should not be consulted after a hit")
	}
}

func TestLookupFallsBackOnErrorAndMiss(t *testing.T) {
	failing := &stubProvider{name: "primary", err: errors.New("rate limited")}
	empty := &stubProvider{name: "secondary"}
	last := &stubProvider{name: "tertiary", product: &Product{Title: "Suave Hand Soap"}}

	res, err := NewService(failing, empty, last).Lookup("079400490896")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != "tertiary" || res.Title != "Suave Hand Soap" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestLookupUnknownReturnsPlaceholder(t *testing.T) {
	res, err := NewService(&stubProvider{name: "p", err: errors.New("down")}).Lookup("000000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Fatal("expected found=false")
	}
	if res.UPC != "000000000000" || res.Title != "Unknown Product - UPC 000000000000" {
		t.Fatalf("unexpected placeholder %+v", res)
	}
}

func TestLookupRejectsShortCodes(t *testing.T) {
	if _, err := NewService().Lookup("12-3"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestUPCItemDBProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prod/trial/lookup" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("upc") == "016000476738" {
			w.Write([]byte(`{"code":"OK","items":[{"title":"Chex Mix","brand":"General Mills","category":"Snacks","images":["http://img/1.jpg"]}]}`))
			return
		}
		w.Write([]byte(`{"code":"OK","items":[]}`))
	}))
	defer srv.Close()

	p := &UPCItemDB{BaseURL: srv.URL, Timeout: 2 * time.Second}

	product, err := p.Lookup("016000476738")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product == nil || product.Title != "Chex Mix" || product.Brand != "General Mills" || product.Image != "http://img/1.jpg" {
		t.Fatalf("unexpected product %+v", product)
	}

	missing, err := p.Lookup("999999999999")
	if err != nil || missing != nil {
		t.Fatalf("expected miss, got %+v, %v", missing, err)
	}
}

func TestOpenFoodFactsProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v0/product/3017620422003.json":
			w.Write([]byte(`{"status":1,"product":{"product_name":"","generic_name":"Hazelnut spread","brands":"Ferrero"}}`))
		default:
			w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
		}
	}))
	defer srv.Close()

	p := &OpenFoodFacts{BaseURL: srv.URL, Timeout: 2 * time.Second}

	product, err := p.Lookup("3017620422003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product == nil || product.Title != "Hazelnut spread" || product.Brand != "Ferrero" {
		t.Fatalf("unexpected product %+v", product)
	}

	missing, err := p.Lookup("123456789")
	if err != nil || missing != nil {
		t.Fatalf("expected miss, got %+v, %v", missing, err)
	}
}

func TestProviderServerErrorFallsThrough(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer broken.Close()

	svc := NewService(
		&UPCItemDB{BaseURL: broken.URL, Timeout: time.Second},
		&OpenFoodFacts{BaseURL: broken.URL, Timeout: time.Second},
	)
	res, err := svc.Lookup("016000476738")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Fatalf("expected placeholder, got %+v", res)
	}
}
