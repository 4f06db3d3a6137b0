package model

// Payment methods accepted at checkout.
const (
	PaymentCash         = "Cash"
	PaymentCreditCard   = "Credit Card"
	PaymentDebitCard    = "Debit Card"
	PaymentBankTransfer = "Bank Transfer"
)

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []string{PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer}

// Sale is a single transaction of one product to one customer.
type Sale struct {
	ID            int64   `json:"id" db:"id"`
	Date          Date    `json:"date" db:"date"`
	CustomerID    int64   `json:"customerId" db:"customer_id"`
	ProductID     int64   `json:"productId" db:"product_id"`
	Quantity      int     `json:"quantity" db:"quantity"`
	Amount        float64 `json:"amount" db:"amount"`
	PaymentMethod string  `json:"paymentMethod" db:"payment_method"`
}

// SaleDetail is a sale joined with the names of its customer and product.
type SaleDetail struct {
	Sale
	CustomerName string `json:"customerName" db:"customer_name"`
	ProductName  string `json:"productName" db:"product_name"`
}

// SaleRequest is the payload for recording or changing a sale.
// A nil Amount is derived from the product price and quantity.
type SaleRequest struct {
	Date          Date     `json:"date"`
	CustomerID    int64    `json:"customerId"`
	ProductID     int64    `json:"productId"`
	Quantity      int      `json:"quantity"`
	Amount        *float64 `json:"amount,omitempty"`
	PaymentMethod string   `json:"paymentMethod"`
}

// SaleFilter narrows a sales listing. Zero values are ignored.
type SaleFilter struct {
	Range      DateRange
	CustomerID int64
	ProductID  int64
	Limit      int
	Offset     int
}
