package order

import "karak-pos/internal/pricing"

type Status string

const (
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

type EntryType string

const (
	TypeItem      EntryType = "item"
	TypeSeparator EntryType = "separator"
)

type PaymentMethod string

const (
	PayCash    PaymentMethod = "Cash"
	PayMachine PaymentMethod = "Machine"
	PayBenefit PaymentMethod = "Benefit"
	PayMixed   PaymentMethod = "Mixed"
)

var PaymentMethods = []PaymentMethod{PayCash, PayMachine, PayBenefit, PayMixed}

func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if m == pm {
			return true
		}
	}
	return false
}

// Order is the persisted record at orders/{id}. Separators share the
// same record shape with only type, createdAt and batchId set. The ID
// is the storage key, not part of the record body.
type Order struct {
	ID string `json:"-"`

	Type          EntryType     `json:"type"`
	Status        Status        `json:"status,omitempty"`
	CreatedAt     int64         `json:"createdAt"`
	CompletedAt   int64         `json:"completedAt,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	BatchID       string        `json:"batchId,omitempty"`

	DrinkType     pricing.DrinkType     `json:"drinkType,omitempty"`
	CupType       pricing.CupType       `json:"cupType,omitempty"`
	Sugar         pricing.SugarLevel    `json:"sugar,omitempty"`
	TeaType       pricing.TeaType       `json:"teaType,omitempty"`
	ColdDrinkName pricing.ColdDrinkName `json:"coldDrinkName,omitempty"`
	SweetsOption  pricing.SweetsOption  `json:"sweetsOption,omitempty"`
	CustomPrice   *float64              `json:"customPrice,omitempty"`

	Quantity   int     `json:"quantity,omitempty"`
	UnitPrice  float64 `json:"unitPrice,omitempty"`
	TotalPrice float64 `json:"totalPrice,omitempty"`
	TotalCost  float64 `json:"totalCost,omitempty"`

	LicensePlate string `json:"licensePlate,omitempty"`
	Notes        string `json:"notes,omitempty"`

	// Auto marks separators inserted by the idle watcher rather than
	// by the cashier.
	Auto bool `json:"auto,omitempty"`
}

func (o Order) IsItem() bool      { return o.Type == TypeItem }
func (o Order) IsSeparator() bool { return o.Type == TypeSeparator }

// CartEntry is one line of a cart being submitted: either an item with
// its product attributes, or a separator splitting the cart into car
// visits.
type CartEntry struct {
	Separator bool
	Attrs     pricing.ItemAttrs
	Quantity  int
}

// Group is a run of orders between separators, treated as one car
// visit.
type Group struct {
	Items      []Order
	Separators []string
}

// Total sums the sale price of the group's items.
func (g Group) Total() float64 {
	var sum float64
	for _, o := range g.Items {
		sum += o.TotalPrice
	}
	return sum
}

// Board is the kanban view: preparing groups newest-first and ready
// groups oldest-first.
type Board struct {
	Preparing []Group
	Ready     []Group
}
