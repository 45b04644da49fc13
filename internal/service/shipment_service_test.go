package service

import (
	"strings"
	"testing"
	"time"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newShipments(t *testing.T, db *gorm.DB, notifier Notifier) *shipmentService {
	t.Helper()
	svc := NewShipmentService(
		repository.NewShipmentRepo(db),
		repository.NewBoxRepo(db),
		repository.NewClientRepo(db),
		repository.NewProductRepo(db),
		repository.NewTransactionRepo(db),
		db,
		notifier,
	).(*shipmentService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestQuoteShipment(t *testing.T) {
	db := newTestDB(t)
	svc := newShipments(t, db, nil)
	client := seedClient(t, db, "ACME")
	a := seedProduct(t, db, client, "A", 10)
	b := seedProduct(t, db, client, "B", 10)
	box := seedBox(t, db, "BOX001", "1.50")

	quote, err := svc.QuoteShipment(&QuoteRequest{
		BoxSelector: BoxSelector{BoxBarcode: "BOX001"},
		Items:       []BatchItem{{ProductID: a.ID.String(), Quantity: 2}, {ProductID: b.ID.String(), Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("QuoteShipment: %v", err)
	}
	if quote.TotalItems != 5 || !quote.TotalCost.Equal(decimal.RequireFromString("2.70")) || quote.BoxType.ID != box.ID {
		t.Fatalf("unexpected quote %+v", quote)
	}
	if quantityOf(t, db, a.ID) != 10 {
		t.Fatal("quote must not touch stock")
	}

	_, err = svc.QuoteShipment(&QuoteRequest{Items: []BatchItem{{ProductID: a.ID.String(), Quantity: 1}}})
	se := expectKind(t, err, ErrValidation)
	if se.Message != "Please scan a box barcode" {
		t.Fatalf("unexpected message %q", se.Message)
	}
}

func TestFulfillShipment(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := newShipments(t, db, notifier)
	client := seedClient(t, db, "ACME")
	a := seedProduct(t, db, client, "A", 10)
	b := seedProduct(t, db, client, "B", 4)
	box := seedBox(t, db, "BOX001", "1.50")

	result, err := svc.FulfillShipment(&FulfillRequest{
		ClientID:    client.ID.String(),
		BoxSelector: BoxSelector{BoxTypeID: box.ID.String()},
		Items:       []BatchItem{{ProductID: a.ID.String(), Quantity: 2}, {ProductID: b.ID.String(), Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("FulfillShipment: %v", err)
	}

	if quantityOf(t, db, a.ID) != 8 || quantityOf(t, db, b.ID) != 0 {
		t.Fatal("stock not decremented")
	}
	if len(result.Items) != 2 || len(result.Transactions) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if !result.Shipment.TotalCost.Equal(decimal.RequireFromString("2.75")) {
		t.Fatalf("total cost = %s, want 2.75", result.Shipment.TotalCost)
	}
	if got := *result.Shipment.Reference; got != "SHIPMENT-1700000000000" {
		t.Fatalf("reference = %q", got)
	}
	if got := *result.Shipment.Notes; got != "Box: Box BOX001, Total: $2.75" {
		t.Fatalf("notes = %q", got)
	}
	for _, tx := range result.Transactions {
		if tx.Type != model.TxOutbound || *tx.Reference != "SHIPMENT-1700000000000" {
			t.Fatalf("unexpected transaction %+v", tx)
		}
		if !strings.HasPrefix(*tx.Notes, "Shipment ID: "+result.Shipment.ID.String()) {
			t.Fatalf("transaction notes %q", *tx.Notes)
		}
	}

	stored, err := svc.GetShipment(result.Shipment.ID)
	if err != nil {
		t.Fatalf("GetShipment: %v", err)
	}
	if len(stored.Items) != 2 || stored.Items[0].Product == nil || stored.BoxType == nil {
		t.Fatalf("shipment not loaded with items: %+v", stored)
	}
	if a := notifier.actions(); len(a) != 1 || a[0] != "shipment_fulfilled" {
		t.Fatalf("unexpected events %v", a)
	}
}

func TestFulfillShipmentRollsBack(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := newShipments(t, db, notifier)
	client := seedClient(t, db, "ACME")
	a := seedProduct(t, db, client, "A", 10)
	b := seedProduct(t, db, client, "B", 1)
	seedBox(t, db, "BOX001", "1.50")

	_, err := svc.FulfillShipment(&FulfillRequest{
		ClientID:    client.ID.String(),
		BoxSelector: BoxSelector{BoxBarcode: "BOX001"},
		Items:       []BatchItem{{ProductID: a.ID.String(), Quantity: 2}, {ProductID: b.ID.String(), Quantity: 3}},
	})
	se := expectKind(t, err, ErrInsufficientInventory)
	if !strings.HasPrefix(se.Message, "item 2: Not enough inventory available for B") {
		t.Fatalf("unexpected message %q", se.Message)
	}

	if quantityOf(t, db, a.ID) != 10 {
		t.Fatal("first item's stock change was not rolled back")
	}
	for _, m := range []interface{}{&model.Shipment{}, &model.ShipmentItem{}, &model.Transaction{}} {
		var count int64
		db.Model(m).Count(&count)
		if count != 0 {
			t.Fatalf("%T rows left behind: %d", m, count)
		}
	}
	if len(notifier.actions()) != 0 {
		t.Fatal("no event expected for a failed shipment")
	}
}

func TestFulfillShipmentRejects(t *testing.T) {
	db := newTestDB(t)
	svc := newShipments(t, db, nil)
	client := seedClient(t, db, "ACME")
	product := seedProduct(t, db, client, "A", 10)
	box := seedBox(t, db, "BOX001", "1.50")
	items := []BatchItem{{ProductID: product.ID.String(), Quantity: 1}}

	_, err := svc.FulfillShipment(&FulfillRequest{ClientID: uuid.NewString(), BoxSelector: BoxSelector{BoxBarcode: "BOX001"}, Items: items})
	expectKind(t, err, ErrNotFound)

	_, err = svc.FulfillShipment(&FulfillRequest{ClientID: client.ID.String(), BoxSelector: BoxSelector{BoxBarcode: "BOX001"}})
	expectKind(t, err, ErrValidation)

	_, err = svc.FulfillShipment(&FulfillRequest{ClientID: client.ID.String(), BoxSelector: BoxSelector{BoxBarcode: "NOPE99"}, Items: items})
	se := expectKind(t, err, ErrNotFound)
	if se.Message != "Box type not found" {
		t.Fatalf("unexpected message %q", se.Message)
	}

	if err := db.Model(box).Update("active", false).Error; err != nil {
		t.Fatal(err)
	}
	_, err = svc.FulfillShipment(&FulfillRequest{ClientID: client.ID.String(), BoxSelector: BoxSelector{BoxTypeID: box.ID.String()}, Items: items})
	expectKind(t, err, ErrNotFound)

	if quantityOf(t, db, product.ID) != 10 {
		t.Fatal("rejected shipments must not touch stock")
	}
}

func TestCreateShipmentAndItem(t *testing.T) {
	db := newTestDB(t)
	svc := newShipments(t, db, nil)
	client := seedClient(t, db, "ACME")
	box := seedBox(t, db, "BOX001", "1.50")
	product := seedProduct(t, db, client, "A", 10)

	_, err := svc.CreateShipment(&CreateShipmentRequest{ClientID: client.ID.String(), BoxTypeID: box.ID.String(), TotalCost: decPtr("0")})
	se := expectKind(t, err, ErrValidation)
	if se.Message != "Client ID, total cost, and box type ID are required" {
		t.Fatalf("unexpected message %q", se.Message)
	}

	shipment, err := svc.CreateShipment(&CreateShipmentRequest{
		ClientID:  client.ID.String(),
		BoxTypeID: box.ID.String(),
		TotalCost: decPtr("3.10"),
		Reference: strPtr("MANUAL-1"),
	})
	if err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}

	_, err = svc.CreateShipmentItem(&CreateShipmentItemRequest{ShipmentID: shipment.ID.String(), ProductID: product.ID.String()})
	expectKind(t, err, ErrValidation)
	if _, err := svc.CreateShipmentItem(&CreateShipmentItemRequest{ShipmentID: shipment.ID.String(), ProductID: product.ID.String(), Quantity: 2}); err != nil {
		t.Fatalf("CreateShipmentItem: %v", err)
	}

	items, err := svc.ListShipmentItems(shipment.ID)
	if err != nil || len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("ListShipmentItems: %+v, %v", items, err)
	}
	// Manual items never move stock
	if quantityOf(t, db, product.ID) != 10 {
		t.Fatal("manual shipment item changed stock")
	}

	list, err := svc.ListShipments(client.ID.String())
	if err != nil || len(list) != 1 || list[0].Client == nil || list[0].BoxType == nil {
		t.Fatalf("ListShipments: %+v, %v", list, err)
	}
	_, err = svc.GetShipment(uuid.New())
	expectKind(t, err, ErrNotFound)
}
