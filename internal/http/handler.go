package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/service"
)

// Uploader forwards file uploads to the remote service.
type Uploader interface {
	UploadFile(ctx context.Context, containerName, fileName string, r io.Reader) (string, error)
	UploadToFileShare(ctx context.Context, shareName, directoryName, fileName string, r io.Reader) (string, error)
}

type Handler struct {
	customers *service.Customers
	products  *service.Products
	orders    *service.Orders
	uploader  Uploader
}

func NewHandler(customers *service.Customers, products *service.Products, orders *service.Orders, uploader Uploader) *Handler {
	return &Handler{
		customers: customers,
		products:  products,
		orders:    orders,
		uploader:  uploader,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.POST("/customers", h.CreateCustomer)
	r.PUT("/customers/:id", h.UpdateCustomer)
	r.DELETE("/customers/:id", h.DeleteCustomer)

	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", h.CreateProduct)
	r.PUT("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)

	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.POST("/orders", h.CreateOrder)
	r.PUT("/orders/:id", h.UpdateOrder)
	r.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	r.DELETE("/orders/:id", h.DeleteOrder)

	if h.uploader != nil {
		r.POST("/uploads", h.UploadFile)
		r.POST("/uploads/fileshare", h.UploadToFileShare)
	}
}

// actor identifies who performed a mutation. The access layer takes it as
// an explicit parameter; this surface sources it from the X-Actor header.
func actor(c *gin.Context) string {
	if a := c.GetHeader("X-Actor"); a != "" {
		return a
	}
	return "admin"
}

func writeError(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

type customerRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shippingAddress"`
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	cust, err := h.customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if cust == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cust, err := h.customers.Create(c.Request.Context(), &model.Customer{
		Partition:       model.PartitionCustomer,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
	}, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cust, err := h.customers.Update(c.Request.Context(), &model.Customer{
		Partition:       model.PartitionCustomer,
		ID:              c.Param("id"),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
	}, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageName   string  `json:"imageName"`
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.products.Create(c.Request.Context(), &model.Product{
		Partition:   model.PartitionProduct,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageName:   req.ImageName,
	}, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.products.Update(c.Request.Context(), &model.Product{
		Partition:   model.PartitionProduct,
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageName:   req.ImageName,
	}, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type orderRequest struct {
	CustomerID string  `json:"customerId"`
	ProductID  string  `json:"productId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	Status     string  `json:"status"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// toOrder derives TotalPrice here: the access layer threads it through
// without computing it.
func (r orderRequest) toOrder(id string) *model.Order {
	return &model.Order{
		Partition:  model.PartitionOrder,
		ID:         id,
		CustomerID: r.CustomerID,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		TotalPrice: r.UnitPrice * float64(r.Quantity),
		Status:     r.Status,
	}
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.orders.Create(c.Request.Context(), req.toOrder(""), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.orders.Update(c.Request.Context(), req.toOrder(c.Param("id")), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, actor(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	name, err := h.uploader.UploadFile(c.Request.Context(), c.PostForm("containerName"), file.Filename, src)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileName": name})
}

func (h *Handler) UploadToFileShare(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	name, err := h.uploader.UploadToFileShare(c.Request.Context(), c.PostForm("shareName"), c.PostForm("directoryName"), file.Filename, src)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileName": name})
}
