package remote

import "github.com/retail-backoffice/internal/model"

// Wire representations use lower camel case field names. Customer is the
// only kind whose fields are renamed; products and orders differ from the
// internal representation in casing only.

type customerDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shippingAddress"`
}

func toCustomer(d customerDTO) model.Customer {
	return model.Customer{
		Partition:       model.PartitionCustomer,
		ID:              d.ID,
		FirstName:       d.Name,
		LastName:        d.Surname,
		Email:           d.Email,
		ShippingAddress: d.ShippingAddress,
	}
}

// fromCustomer always sends an empty username; the remote service has never
// accepted one from this backend and the observed contract is preserved.
func fromCustomer(c *model.Customer) customerDTO {
	return customerDTO{
		ID:              c.ID,
		Name:            c.FirstName,
		Surname:         c.LastName,
		Username:        "",
		Email:           c.Email,
		ShippingAddress: c.ShippingAddress,
	}
}

type productDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageName   string  `json:"imageName"`
}

func toProduct(d productDTO) model.Product {
	return model.Product{
		Partition:   model.PartitionProduct,
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		ImageName:   d.ImageName,
	}
}

func fromProduct(p *model.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageName:   p.ImageName,
	}
}

type orderDTO struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customerId"`
	ProductID  string  `json:"productId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

func toOrder(d orderDTO) model.Order {
	return model.Order{
		Partition:  model.PartitionOrder,
		ID:         d.ID,
		CustomerID: d.CustomerID,
		ProductID:  d.ProductID,
		Quantity:   d.Quantity,
		UnitPrice:  d.UnitPrice,
		TotalPrice: d.TotalPrice,
		Status:     d.Status,
	}
}

func fromOrder(o *model.Order) orderDTO {
	return orderDTO{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		UnitPrice:  o.UnitPrice,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
	}
}

type statusPatch struct {
	Status string `json:"status"`
}
