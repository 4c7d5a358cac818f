package model

// Request is an ordered product to desired quantity mapping scoped to one order.
// Product ids are unique within a Request and the order of lines is the order
// in which the allocation search visits products.
type Request []LineItem

// NewRequest normalises raw order lines into a Request. A product id that
// appears more than once keeps the position of its first occurrence and the
// quantity of its last one.
func NewRequest(lines []LineItem) Request {
	req := make(Request, 0, len(lines))
	index := make(map[int]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			req[i].Quantity = line.Quantity
			continue
		}
		index[line.ProductID] = len(req)
		req = append(req, line)
	}
	return req
}

// Total returns the sum of all requested quantities.
func (r Request) Total() int {
	total := 0
	for _, line := range r {
		total += line.Quantity
	}
	return total
}

// IsSatisfied reports whether every requested quantity has reached zero.
func (r Request) IsSatisfied() bool {
	for _, line := range r {
		if line.Quantity > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	if r == nil {
		return nil
	}
	out := make(Request, len(r))
	copy(out, r)
	return out
}

// Order is a customer order as received at the boundary.
//
// @Description Customer order with requested products
// @Example {"order_id": 123, "requested": [{"product_id": 0, "quantity": 6}, {"product_id": 10, "quantity": 4}]}
type Order struct {
	OrderID   int        `json:"order_id" example:"123"`
	Requested []LineItem `json:"requested"`
}

// OrderState is the lifecycle state of an order after a processing pass.
type OrderState string

const (
	// OrderStateActive is an order that is still being packed.
	OrderStateActive OrderState = "active"
	// OrderStatePartiallyShipped is an order with at least one shipped package and a remaining request.
	OrderStatePartiallyShipped OrderState = "partially_shipped"
	// OrderStateDeferred is an order waiting in the deferred queue for a restock.
	OrderStateDeferred OrderState = "deferred"
	// OrderStateComplete is an order whose request reached zero.
	OrderStateComplete OrderState = "complete"
)

// DeferredEntry is an order remainder waiting for inventory.
//
// @Description Order remainder queued until a restock
type DeferredEntry struct {
	OrderID   int     `json:"order_id" example:"125"`
	Remaining Request `json:"remaining"`
}

// OrderResult reports the outcome of one processing pass over an order.
//
// @Description Result of processing an order
type OrderResult struct {
	OrderID   int        `json:"order_id" example:"123"`
	State     OrderState `json:"state" example:"deferred"`
	Shipments []Shipment `json:"shipments"`
	Remaining Request    `json:"remaining"`
	Rejected  []Rejected `json:"rejected,omitempty"`
}

// Deferred reports whether the order ended the pass in the deferred queue.
func (r *OrderResult) Deferred() bool {
	return r.State == OrderStateDeferred
}

// RestockResult reports the outcome of a restock and the deferred pass it triggered.
//
// @Description Result of a restock, including orders retried from the deferred queue
type RestockResult struct {
	Credited []LineItem    `json:"credited"`
	Retried  []OrderResult `json:"retried"`
	Rejected []Rejected    `json:"rejected,omitempty"`
}

// Rejected describes a line item refused at the boundary.
//
// @Description Line item rejected at the boundary
// @Example {"index": 1, "product_id": 99, "reason": "unknown product"}
type Rejected struct {
	Index     int    `json:"index" example:"1"`
	ProductID int    `json:"product_id" example:"99"`
	Reason    string `json:"reason" example:"unknown product"`
}
