package service

import (
	"testing"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"

	"github.com/google/uuid"
)

func TestCreateClient(t *testing.T) {
	svc := NewClientService(repository.NewClientRepo(newTestDB(t)))

	client, err := svc.CreateClient(&CreateClientRequest{
		Name:    "  Acme Corp ",
		Code:    " acme ",
		Address: &AddressRequest{City: strPtr("Reno")},
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if client.Code != "ACME" || client.Name != "Acme Corp" {
		t.Fatalf("unexpected client %+v", client)
	}
	if client.Country != model.DefaultCountry || client.City != "Reno" || !client.Active {
		t.Fatalf("defaults not applied: %+v", client)
	}

	_, err = svc.CreateClient(&CreateClientRequest{Name: "Other", Code: "Acme"})
	se := expectKind(t, err, ErrConflict)
	if se.Message != "Client code must be unique" {
		t.Fatalf("unexpected message %q", se.Message)
	}
}

func TestCreateClientRequiresNameAndCode(t *testing.T) {
	svc := NewClientService(repository.NewClientRepo(newTestDB(t)))

	for _, req := range []CreateClientRequest{{Name: "Acme"}, {Code: "ACME"}, {Name: " ", Code: "ACME"}} {
		_, err := svc.CreateClient(&req)
		se := expectKind(t, err, ErrValidation)
		if se.Message != "Name and code are required" {
			t.Fatalf("unexpected message %q", se.Message)
		}
	}
}

func TestUpdateClientIsPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientRepo(db))
	client, err := svc.CreateClient(&CreateClientRequest{Name: "Acme", Code: "ACME", Email: "ops@acme.test", Phone: "555"})
	if err != nil {
		t.Fatal(err)
	}
	seedClient(t, db, "GLOBEX")

	updated, err := svc.UpdateClient(client.ID, &UpdateClientRequest{Phone: strPtr("777"), Address: &AddressRequest{State: strPtr("NV")}})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if updated.Name != "Acme" || updated.Email != "ops@acme.test" || updated.Phone != "777" || updated.State != "NV" {
		t.Fatalf("partial update lost fields: %+v", updated)
	}

	// Same code is not a conflict with itself
	if _, err := svc.UpdateClient(client.ID, &UpdateClientRequest{Code: strPtr("acme")}); err != nil {
		t.Fatalf("unchanged code rejected: %v", err)
	}
	_, err = svc.UpdateClient(client.ID, &UpdateClientRequest{Code: strPtr("globex")})
	expectKind(t, err, ErrConflict)

	inactive := false
	updated, err = svc.UpdateClient(client.ID, &UpdateClientRequest{Active: &inactive})
	if err != nil || updated.Active {
		t.Fatalf("deactivate failed: %+v, %v", updated, err)
	}
	reloaded, _ := svc.GetClient(client.ID)
	if reloaded.Active {
		t.Fatal("inactive flag not persisted")
	}
}

func TestClientNotFound(t *testing.T) {
	svc := NewClientService(repository.NewClientRepo(newTestDB(t)))
	missing := uuid.New()

	_, err := svc.GetClient(missing)
	expectKind(t, err, ErrNotFound)
	_, err = svc.UpdateClient(missing, &UpdateClientRequest{Name: strPtr("x")})
	expectKind(t, err, ErrNotFound)
	se := expectKind(t, svc.DeleteClient(missing), ErrNotFound)
	if se.Message != "Client not found" {
		t.Fatalf("unexpected message %q", se.Message)
	}
}

func TestDeleteClientLeavesProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientRepo(db))
	client := seedClient(t, db, "ACME")
	product := seedProduct(t, db, client, "SKU-1", 3)

	if err := svc.DeleteClient(client.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if _, err := svc.GetClient(client.ID); err == nil {
		t.Fatal("client still present")
	}
	if got := quantityOf(t, db, product.ID); got != 3 {
		t.Fatalf("product should survive its client, quantity %d", got)
	}
}

func TestListClientsOrderedByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientRepo(db))
	for _, code := range []string{"ZED", "ALPHA", "MID"} {
		seedClient(t, db, code)
	}

	clients, err := svc.ListClients()
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 3 || clients[0].Code != "ALPHA" || clients[2].Code != "ZED" {
		t.Fatalf("unexpected order %+v", clients)
	}
}
