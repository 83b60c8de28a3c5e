package model

import (
	"errors"

	"github.com/google/uuid"
)

// Partition classifiers. Every record of a kind lives under the same fixed
// partition in the table store.
const (
	PartitionCustomer = "Customer"
	PartitionProduct  = "Product"
	PartitionOrder    = "Order"
)

// ErrNotFound is returned by stores and the remote proxy when no entity
// exists under the requested key.
var ErrNotFound = errors.New("entity not found")

type Customer struct {
	Partition       string `json:"partition"`
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shippingAddress"`
}

type Product struct {
	Partition   string  `json:"partition"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageName   string  `json:"imageName"`
}

// Order references Customer and Product by id only; the store does not
// enforce them. TotalPrice is computed by the calling layer.
type Order struct {
	Partition  string  `json:"partition"`
	ID         string  `json:"id"`
	CustomerID string  `json:"customerId"`
	ProductID  string  `json:"productId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

// NewID generates an identifier for records created without one.
func NewID() string {
	return uuid.New().String()
}
