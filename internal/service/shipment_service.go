package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/pricing"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/upc"
	"go-3pl-warehouse/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShipmentService interface {
	ListShipments(clientID string) ([]model.Shipment, error)
	GetShipment(id uuid.UUID) (*model.Shipment, error)
	ListShipmentItems(shipmentID uuid.UUID) ([]model.ShipmentItem, error)
	CreateShipment(req *CreateShipmentRequest) (*model.Shipment, error)
	CreateShipmentItem(req *CreateShipmentItemRequest) (*model.ShipmentItem, error)
	QuoteShipment(req *QuoteRequest) (*Quote, error)
	FulfillShipment(req *FulfillRequest) (*FulfillResult, error)
}

type CreateShipmentRequest struct {
	ClientID  string           `json:"clientId" validate:"uuid_required"`
	BoxTypeID string           `json:"boxTypeId" validate:"uuid_required"`
	TotalCost *decimal.Decimal `json:"totalCost" validate:"required"`
	Reference *string          `json:"reference"`
	Notes     *string          `json:"notes"`
}

type CreateShipmentItemRequest struct {
	ShipmentID string `json:"shipmentId" validate:"uuid_required"`
	ProductID  string `json:"productId" validate:"uuid_required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
}

// BoxSelector names the box either by id or by its scanned barcode
type BoxSelector struct {
	BoxTypeID  string `json:"boxTypeId"`
	BoxBarcode string `json:"boxBarcode"`
}

type QuoteRequest struct {
	BoxSelector
	Items []BatchItem `json:"items" validate:"required,min=1,dive"`
}

type Quote struct {
	pricing.Breakdown
	BoxType *model.BoxType `json:"box_type"`
}

// FulfillRequest is the packing-station session: client, box and every scanned item
type FulfillRequest struct {
	ClientID string `json:"clientId" validate:"uuid_required"`
	BoxSelector
	Items     []BatchItem `json:"items" validate:"required,min=1,dive"`
	Reference *string     `json:"reference"`
	Notes     *string     `json:"notes"`
}

type FulfillResult struct {
	Shipment     *model.Shipment      `json:"shipment"`
	Items        []model.ShipmentItem `json:"items"`
	Transactions []model.Transaction  `json:"transactions"`
	Pricing      pricing.Breakdown    `json:"pricing"`
}

type shipmentService struct {
	shipmentRepo repository.ShipmentRepository
	boxRepo      repository.BoxRepository
	clientRepo   repository.ClientRepository
	adjuster     *stockAdjuster
	db           *gorm.DB
	notifier     Notifier
	now          func() time.Time
}

func NewShipmentService(
	shipmentRepo repository.ShipmentRepository,
	boxRepo repository.BoxRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	db *gorm.DB,
	notifier Notifier,
) ShipmentService {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		boxRepo:      boxRepo,
		clientRepo:   clientRepo,
		adjuster:     &stockAdjuster{productRepo: productRepo, transactionRepo: transactionRepo},
		db:           db,
		notifier:     notifierOrNoop(notifier),
		now:          time.Now,
	}
}

func (s *shipmentService) ListShipments(clientID string) ([]model.Shipment, error) {
	id, err := optionalID(clientID)
	if err != nil {
		return nil, err
	}
	return s.shipmentRepo.FindAll(id)
}

func (s *shipmentService) GetShipment(id uuid.UUID) (*model.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, "Shipment")
	}
	return shipment, nil
}

func (s *shipmentService) ListShipmentItems(shipmentID uuid.UUID) ([]model.ShipmentItem, error) {
	return s.shipmentRepo.FindItems(shipmentID)
}

func (s *shipmentService) CreateShipment(req *CreateShipmentRequest) (*model.Shipment, error) {
	const msg = "Client ID, total cost, and box type ID are required"
	if err := requireFields(req, msg); err != nil {
		return nil, err
	}
	if !req.TotalCost.IsPositive() {
		return nil, validationError(msg)
	}

	shipment := &model.Shipment{
		ClientID:  uuid.MustParse(req.ClientID),
		BoxTypeID: uuid.MustParse(req.BoxTypeID),
		TotalCost: *req.TotalCost,
		Reference: nullable(req.Reference),
		Notes:     nullable(req.Notes),
	}
	if err := s.shipmentRepo.Create(nil, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) CreateShipmentItem(req *CreateShipmentItemRequest) (*model.ShipmentItem, error) {
	if err := requireFields(req, "Shipment ID, product ID, and quantity are required"); err != nil {
		return nil, err
	}

	item := &model.ShipmentItem{
		ShipmentID: uuid.MustParse(req.ShipmentID),
		ProductID:  uuid.MustParse(req.ProductID),
		Quantity:   req.Quantity,
	}
	if err := s.shipmentRepo.CreateItem(nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

// resolveBox finds the active box named by sel, on tx when given
func (s *shipmentService) resolveBox(tx *gorm.DB, sel BoxSelector) (*model.BoxType, error) {
	var (
		box *model.BoxType
		err error
	)
	switch {
	case strings.TrimSpace(sel.BoxTypeID) != "":
		id, parseErr := uuid.Parse(strings.TrimSpace(sel.BoxTypeID))
		if parseErr != nil {
			return nil, validationError("boxTypeId must be a valid id")
		}
		box, err = s.boxRepo.FindActiveByID(tx, id)
	case strings.TrimSpace(sel.BoxBarcode) != "":
		box, err = s.boxRepo.FindActiveByBarcode(tx, upc.Fold(sel.BoxBarcode))
	default:
		return nil, validationError("Please scan a box barcode")
	}
	if err != nil {
		return nil, lookupError(err, "Box type")
	}
	return box, nil
}

func quantities(items []BatchItem) []int {
	qs := make([]int, len(items))
	for i, item := range items {
		qs[i] = item.Quantity
	}
	return qs
}

func (s *shipmentService) QuoteShipment(req *QuoteRequest) (*Quote, error) {
	if err := requireFields(req, "No items in shipment"); err != nil {
		return nil, err
	}
	box, err := s.resolveBox(nil, req.BoxSelector)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Breakdown: pricing.CalculateShipmentCost(quantities(req.Items), box.Price),
		BoxType:   box,
	}, nil
}

// FulfillShipment records the shipment, its items and one outbound
// adjustment per item in a single transaction. Any failure leaves nothing behind.
func (s *shipmentService) FulfillShipment(req *FulfillRequest) (*FulfillResult, error) {
	if err := requireFields(req, "Client ID and at least one item are required"); err != nil {
		return nil, err
	}
	clientID := uuid.MustParse(req.ClientID)

	if _, err := s.clientRepo.FindByID(clientID); err != nil {
		return nil, lookupError(err, "Client")
	}

	result := &FulfillResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		box, err := s.resolveBox(tx, req.BoxSelector)
		if err != nil {
			return err
		}

		result.Pricing = pricing.CalculateShipmentCost(quantities(req.Items), box.Price)

		reference := nullable(req.Reference)
		if reference == nil {
			ref := fmt.Sprintf("SHIPMENT-%d", s.now().UnixMilli())
			reference = &ref
		}
		notes := nullable(req.Notes)
		if notes == nil {
			n := fmt.Sprintf("Box: %s, Total: $%s", box.Name, result.Pricing.TotalCost.StringFixed(2))
			notes = &n
		}

		shipment := &model.Shipment{
			ClientID:  clientID,
			BoxTypeID: box.ID,
			TotalCost: result.Pricing.TotalCost,
			Reference: reference,
			Notes:     notes,
		}
		if err := s.shipmentRepo.Create(tx, shipment); err != nil {
			return err
		}
		shipment.BoxType = box

		txNotes := fmt.Sprintf("Shipment ID: %s, Box: %s", shipment.ID, box.Name)
		for i, line := range req.Items {
			productID := uuid.MustParse(line.ProductID)

			item := &model.ShipmentItem{ShipmentID: shipment.ID, ProductID: productID, Quantity: line.Quantity}
			if err := s.shipmentRepo.CreateItem(tx, item); err != nil {
				return err
			}
			result.Items = append(result.Items, *item)

			record, _, err := s.adjuster.apply(tx, adjustment{
				productID: productID,
				txType:    model.TxOutbound,
				quantity:  line.Quantity,
				reference: reference,
				notes:     &txNotes,
			})
			if err != nil {
				var se *Error
				if errors.As(err, &se) {
					return &Error{Kind: se.Kind, Message: fmt.Sprintf("item %d: %s", i+1, se.Message)}
				}
				return err
			}
			result.Transactions = append(result.Transactions, *record)
		}

		result.Shipment = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ws.Event{
		Type:    ws.EventShipmentUpdate,
		Action:  "shipment_fulfilled",
		Message: fmt.Sprintf("Shipment %s packed: %d items, $%s", *result.Shipment.Reference, result.Pricing.TotalItems, result.Pricing.TotalCost.StringFixed(2)),
		Data:    result,
	})
	return result, nil
}
