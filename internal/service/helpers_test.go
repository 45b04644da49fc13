package service

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/ws"
	"go-3pl-warehouse/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(database.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name), logger.Silent)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ws.Event
}

func (n *recordingNotifier) Publish(event ws.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Action
	}
	return out
}

func seedClient(t *testing.T, db *gorm.DB, code string) *model.Client {
	t.Helper()
	client := &model.Client{Name: "Client " + code, Code: code, Country: model.DefaultCountry, Active: true}
	if err := repository.NewClientRepo(db).Create(client); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func seedProduct(t *testing.T, db *gorm.DB, client *model.Client, sku string, quantity int) *model.Product {
	t.Helper()
	product := &model.Product{Name: "Product " + sku, SKU: sku, ClientID: client.ID, Quantity: quantity}
	if err := repository.NewProductRepo(db).Create(product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedBox(t *testing.T, db *gorm.DB, barcode, price string) *model.BoxType {
	t.Helper()
	box := &model.BoxType{Name: "Box " + barcode, Barcode: barcode, Price: decimal.RequireFromString(price), Active: true}
	if err := repository.NewBoxRepo(db).Create(box); err != nil {
		t.Fatalf("seed box: %v", err)
	}
	return box
}

func quantityOf(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product model.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Quantity
}

func strPtr(s string) *string { return &s }

func expectKind(t *testing.T, err error, kind error) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	se, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if se.Kind != kind {
		t.Fatalf("expected kind %v, got %v (%s)", kind, se.Kind, se.Message)
	}
	return se
}
