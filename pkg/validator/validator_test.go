package validator

import (
	"testing"

	"github.com/google/uuid"
)

type sample struct {
	Name     string    `json:"name" validate:"required"`
	ClientID string    `json:"clientId" validate:"uuid_required"`
	OwnerID  uuid.UUID `json:"ownerId" validate:"uuid_required"`
	Quantity int       `json:"quantity" validate:"gt=0"`
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	errs := ValidateStruct(&sample{ClientID: "nope", Quantity: 0})
	got := map[string]string{}
	for _, e := range errs {
		got[e.FailedField] = e.Message()
	}

	want := map[string]string{
		"name":     "name is required",
		"clientId": "clientId is required",
		"ownerId":  "ownerId is required",
		"quantity": "quantity must be greater than 0",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestValidateStructPasses(t *testing.T) {
	errs := ValidateStruct(&sample{Name: "a", ClientID: uuid.NewString(), OwnerID: uuid.New(), Quantity: 1})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs[0])
	}
}
