// Package pricing computes what a client is billed for a packed shipment.
package pricing

import "github.com/shopspring/decimal"

var (
	// BaseFulfillmentFee covers the first item picked into a box
	BaseFulfillmentFee = decimal.RequireFromString("1.00")
	// PerAdditionalItemFee is charged for every item after the first
	PerAdditionalItemFee = decimal.RequireFromString("0.05")
)

// Breakdown is the itemised cost of one shipment
type Breakdown struct {
	TotalItems     int             `json:"total_items"`
	FulfillmentFee decimal.Decimal `json:"fulfillment_fee"`
	BoxCost        decimal.Decimal `json:"box_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

// CalculateShipmentCost bills base + max(0, items-1) * per-item + box.
// Negative quantities count as zero.
func CalculateShipmentCost(quantities []int, boxPrice decimal.Decimal) Breakdown {
	total := 0
	for _, q := range quantities {
		if q > 0 {
			total += q
		}
	}

	additional := total - 1
	if additional < 0 {
		additional = 0
	}

	fee := BaseFulfillmentFee.Add(PerAdditionalItemFee.Mul(decimal.NewFromInt(int64(additional))))
	return Breakdown{
		TotalItems:     total,
		FulfillmentFee: fee,
		BoxCost:        boxPrice,
		TotalCost:      fee.Add(boxPrice),
	}
}
