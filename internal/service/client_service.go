package service

import (
	"strings"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"

	"github.com/google/uuid"
)

type ClientService interface {
	ListClients() ([]model.Client, error)
	GetClient(id uuid.UUID) (*model.Client, error)
	CreateClient(req *CreateClientRequest) (*model.Client, error)
	UpdateClient(id uuid.UUID, req *UpdateClientRequest) (*model.Client, error)
	DeleteClient(id uuid.UUID) error
}

type AddressRequest struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Country *string `json:"country"`
}

type CreateClientRequest struct {
	Name        string          `json:"name" validate:"required"`
	Code        string          `json:"code" validate:"required"`
	ContactName string          `json:"contactName"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     *AddressRequest `json:"address"`
	Notes       string          `json:"notes"`
}

// UpdateClientRequest is partial: nil keeps the stored value
type UpdateClientRequest struct {
	Name        *string         `json:"name"`
	Code        *string         `json:"code"`
	ContactName *string         `json:"contactName"`
	Email       *string         `json:"email"`
	Phone       *string         `json:"phone"`
	Address     *AddressRequest `json:"address"`
	Active      *bool           `json:"active"`
	Notes       *string         `json:"notes"`
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *clientService) ListClients() ([]model.Client, error) {
	return s.clientRepo.FindAll()
}

func (s *clientService) GetClient(id uuid.UUID) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, "Client")
	}
	return client, nil
}

func (s *clientService) codeTaken(code string) error {
	_, err := s.clientRepo.FindByCode(code)
	exists, err := taken(err)
	if err != nil {
		return err
	}
	if exists {
		return newError(ErrConflict, "Client code must be unique")
	}
	return nil
}

func (s *clientService) CreateClient(req *CreateClientRequest) (*model.Client, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Code = normalizeCode(req.Code)
	if err := requireFields(req, "Name and code are required"); err != nil {
		return nil, err
	}

	if err := s.codeTaken(req.Code); err != nil {
		return nil, err
	}

	client := &model.Client{
		Name:        req.Name,
		Code:        req.Code,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Country:     model.DefaultCountry,
		Active:      true,
		Notes:       req.Notes,
	}
	if a := req.Address; a != nil {
		client.StreetAddress = keepUnlessNil(a.Street, "")
		client.City = keepUnlessNil(a.City, "")
		client.State = keepUnlessNil(a.State, "")
		client.ZipCode = keepUnlessNil(a.ZipCode, "")
		client.Country = keepUnlessBlank(a.Country, model.DefaultCountry)
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) UpdateClient(id uuid.UUID, req *UpdateClientRequest) (*model.Client, error) {
	existing, err := s.clientRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, "Client")
	}

	// Re-check uniqueness only when the code actually changes
	if req.Code != nil && normalizeCode(*req.Code) != "" {
		code := normalizeCode(*req.Code)
		if code != existing.Code {
			if err := s.codeTaken(code); err != nil {
				return nil, err
			}
			existing.Code = code
		}
	}

	existing.Name = keepUnlessBlank(req.Name, existing.Name)
	existing.ContactName = keepUnlessNil(req.ContactName, existing.ContactName)
	existing.Email = keepUnlessNil(req.Email, existing.Email)
	existing.Phone = keepUnlessNil(req.Phone, existing.Phone)
	existing.Notes = keepUnlessNil(req.Notes, existing.Notes)
	if req.Active != nil {
		existing.Active = *req.Active
	}
	if a := req.Address; a != nil {
		existing.StreetAddress = keepUnlessNil(a.Street, existing.StreetAddress)
		existing.City = keepUnlessNil(a.City, existing.City)
		existing.State = keepUnlessNil(a.State, existing.State)
		existing.ZipCode = keepUnlessNil(a.ZipCode, existing.ZipCode)
		existing.Country = keepUnlessNil(a.Country, existing.Country)
	}

	if err := s.clientRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteClient removes the row only; products and shipments that reference it are left alone
func (s *clientService) DeleteClient(id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(id); err != nil {
		return lookupError(err, "Client")
	}
	return s.clientRepo.Delete(id)
}
