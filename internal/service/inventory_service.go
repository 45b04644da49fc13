package service

import (
	"errors"
	"fmt"

	"go-3pl-warehouse/internal/model"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/ws"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxAdjustAttempts bounds how often a lost compare-and-set is re-read and retried
const maxAdjustAttempts = 3

type InventoryService interface {
	RecordInbound(req *AdjustmentRequest) (*model.Transaction, error)
	RecordOutbound(req *AdjustmentRequest) (*model.Transaction, error)
	RecordInboundBatch(req *BatchInboundRequest) ([]model.Transaction, error)
	ListTransactions(txType string) ([]model.Transaction, error)
	ListProductTransactions(productID uuid.UUID) ([]model.Transaction, error)
}

type AdjustmentRequest struct {
	ProductID string  `json:"productId" validate:"uuid_required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Reference *string `json:"reference"`
	Notes     *string `json:"notes"`
}

type BatchItem struct {
	ProductID string `json:"productId" validate:"uuid_required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// BatchInboundRequest is one receiving session submitted at once
type BatchInboundRequest struct {
	Items     []BatchItem `json:"items" validate:"required,min=1,dive"`
	Reference *string     `json:"reference"`
	Notes     *string     `json:"notes"`
}

const adjustmentFieldsMessage = "Product ID and positive quantity are required"

// stockAdjuster applies one audited quantity change inside a caller's transaction.
// Shipment fulfillment shares it so every stock change follows the same path.
type stockAdjuster struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
}

type adjustment struct {
	productID uuid.UUID
	txType    model.TransactionType
	quantity  int
	reference *string
	notes     *string
}

// apply locks the product row, computes the new quantity, writes it with a
// compare-and-set and appends the audit row, all on tx.
func (a *stockAdjuster) apply(tx *gorm.DB, adj adjustment) (*model.Transaction, *model.Product, error) {
	for attempt := 1; attempt <= maxAdjustAttempts; attempt++ {
		product, err := a.productRepo.LockByID(tx, adj.productID)
		if err != nil {
			return nil, nil, lookupError(err, "Product")
		}

		previous := product.Quantity
		var next int
		switch adj.txType {
		case model.TxInbound:
			next = previous + adj.quantity
		case model.TxOutbound:
			if adj.quantity > previous {
				return nil, product, newError(ErrInsufficientInventory,
					"Not enough inventory available for %s (on hand %d, requested %d)", product.SKU, previous, adj.quantity)
			}
			next = previous - adj.quantity
		default:
			return nil, nil, validationError("unknown transaction type %q", adj.txType)
		}

		record, err := a.commit(tx, product, adj, next, attempt)
		if err != nil {
			return nil, nil, err
		}
		if record == nil {
			continue
		}
		return record, product, nil
	}
	return nil, nil, newError(ErrConflict, "Product quantity changed concurrently, please retry")
}

// setQuantity moves the product to target on tx and records the difference as an
// inbound or outbound row. It returns a nil record when the quantity already matches.
func (a *stockAdjuster) setQuantity(tx *gorm.DB, productID uuid.UUID, target int, notes *string) (*model.Transaction, *model.Product, error) {
	if target < 0 {
		return nil, nil, validationError("quantity must be at least 0")
	}
	for attempt := 1; attempt <= maxAdjustAttempts; attempt++ {
		product, err := a.productRepo.LockByID(tx, productID)
		if err != nil {
			return nil, nil, lookupError(err, "Product")
		}
		if product.Quantity == target {
			return nil, product, nil
		}

		adj := adjustment{productID: productID, txType: model.TxInbound, quantity: target - product.Quantity, notes: notes}
		if adj.quantity < 0 {
			adj.txType, adj.quantity = model.TxOutbound, -adj.quantity
		}

		record, err := a.commit(tx, product, adj, target, attempt)
		if err != nil {
			return nil, nil, err
		}
		if record == nil {
			continue
		}
		return record, product, nil
	}
	return nil, nil, newError(ErrConflict, "Product quantity changed concurrently, please retry")
}

// commit writes next over the locked product's quantity and appends the audit row.
// A nil record with a nil error means another writer won the compare-and-set.
func (a *stockAdjuster) commit(tx *gorm.DB, product *model.Product, adj adjustment, next, attempt int) (*model.Transaction, error) {
	previous := product.Quantity
	ok, err := a.productRepo.CompareAndSetQuantity(tx, product.ID, previous, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		logrus.Warnf("inventory: quantity of %s changed underneath us (attempt %d)", product.ID, attempt)
		return nil, nil
	}

	record := &model.Transaction{
		Type:             adj.txType,
		ProductID:        product.ID,
		Quantity:         adj.quantity,
		PreviousQuantity: previous,
		NewQuantity:      next,
		Reference:        adj.reference,
		Notes:            adj.notes,
	}
	if err := a.transactionRepo.Create(tx, record); err != nil {
		return nil, err
	}

	product.Quantity = next
	return record, nil
}

type inventoryService struct {
	adjuster        *stockAdjuster
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	notifier        Notifier
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, notifier Notifier) InventoryService {
	return &inventoryService{
		adjuster:        &stockAdjuster{productRepo: pRepo, transactionRepo: tRepo},
		transactionRepo: tRepo,
		db:              db,
		notifier:        notifierOrNoop(notifier),
	}
}

func (s *inventoryService) RecordInbound(req *AdjustmentRequest) (*model.Transaction, error) {
	return s.record(req, model.TxInbound)
}

func (s *inventoryService) RecordOutbound(req *AdjustmentRequest) (*model.Transaction, error) {
	return s.record(req, model.TxOutbound)
}

func (s *inventoryService) record(req *AdjustmentRequest, txType model.TransactionType) (*model.Transaction, error) {
	if err := requireFields(req, adjustmentFieldsMessage); err != nil {
		return nil, err
	}

	adj := adjustment{
		productID: uuid.MustParse(req.ProductID),
		txType:    txType,
		quantity:  req.Quantity,
		reference: nullable(req.Reference),
		notes:     nullable(req.Notes),
	}

	var (
		record  *model.Transaction
		product *model.Product
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		record, product, err = s.adjuster.apply(tx, adj)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(record, product)
	return record, nil
}

func (s *inventoryService) RecordInboundBatch(req *BatchInboundRequest) ([]model.Transaction, error) {
	if err := requireFields(req, "At least one item with product ID and positive quantity is required"); err != nil {
		return nil, err
	}

	reference := nullable(req.Reference)
	notes := nullable(req.Notes)

	records := make([]model.Transaction, 0, len(req.Items))
	products := make([]*model.Product, 0, len(req.Items))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, item := range req.Items {
			record, product, err := s.adjuster.apply(tx, adjustment{
				productID: uuid.MustParse(item.ProductID),
				txType:    model.TxInbound,
				quantity:  item.Quantity,
				reference: reference,
				notes:     notes,
			})
			if err != nil {
				var se *Error
				if errors.As(err, &se) {
					return &Error{Kind: se.Kind, Message: fmt.Sprintf("item %d: %s", i+1, se.Message)}
				}
				return err
			}
			records = append(records, *record)
			products = append(products, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range records {
		s.publish(&records[i], products[i])
	}
	return records, nil
}

func (s *inventoryService) ListTransactions(txType string) ([]model.Transaction, error) {
	if txType == "" {
		return s.transactionRepo.FindAll(nil)
	}
	t := model.TransactionType(txType)
	if !t.Valid() {
		return nil, validationError("type must be one of: inbound, outbound")
	}
	return s.transactionRepo.FindAll(&t)
}

func (s *inventoryService) ListProductTransactions(productID uuid.UUID) ([]model.Transaction, error) {
	return s.transactionRepo.FindByProduct(productID)
}

func (s *inventoryService) publish(record *model.Transaction, product *model.Product) {
	verb := "received"
	if record.Type == model.TxOutbound {
		verb = "shipped"
	}
	s.notifier.Publish(ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  string(record.Type),
		Message: fmt.Sprintf("%d units of '%s' %s", record.Quantity, product.Name, verb),
		Data: map[string]interface{}{
			"transaction": record,
			"product": map[string]interface{}{
				"id":       product.ID,
				"sku":      product.SKU,
				"name":     product.Name,
				"quantity": product.Quantity,
			},
		},
	})
}
