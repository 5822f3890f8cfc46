package expense

type Type string

const (
	// TypeOperational is money leaving the till for the day's running
	// costs.
	TypeOperational Type = "operational"
	// TypeInventory is money converted into stock on the shelf; it is
	// excluded from the day's net profit.
	TypeInventory Type = "inventory"
)

// Expense is a persisted record at expenses/{id}. Names are kept in
// both languages because the receipts and the menus disagree on which
// one to show.
type Expense struct {
	ID        string  `json:"-"`
	Category  string  `json:"category"`
	NameEn    string  `json:"nameEn"`
	NameAr    string  `json:"nameAr"`
	Cost      float64 `json:"cost"`
	Timestamp int64   `json:"timestamp"`
	Type      Type    `json:"type,omitempty"`
}

// WasteLog records spoiled or broken stock at waste_logs/{id}. Cost is
// the loss valued at the item's unit cost when logged.
type WasteLog struct {
	ID        string  `json:"-"`
	Item      string  `json:"item"`
	Qty       float64 `json:"qty"`
	Cost      float64 `json:"cost"`
	Timestamp int64   `json:"timestamp"`
	Note      string  `json:"note,omitempty"`
}

// Restock describes a stock purchase: the expense to log and how it
// lands in inventory and the cost table.
type Restock struct {
	Category string
	NameEn   string
	NameAr   string
	Cost     float64
	Qty      float64
	// UpdateUnitCost recalculates the item's unit cost as Cost/Qty.
	UpdateUnitCost bool
}
