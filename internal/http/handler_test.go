package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retail-backoffice/internal/events"
	"github.com/retail-backoffice/internal/fallback"
	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/remote"
	"github.com/retail-backoffice/internal/service"
	"github.com/retail-backoffice/internal/storage/memory"
)

var errDown = &url.Error{
	Op:  "Get",
	URL: "http://remote:5000/orders",
	Err: &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	},
}

// downAPI simulates an unreachable remote service for every entity, so
// requests exercise the storage fallback end to end.
type downAPI struct{ err error }

func (d downAPI) ListCustomers(ctx context.Context) ([]model.Customer, error) { return nil, d.err }
func (d downAPI) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	return nil, d.err
}
func (d downAPI) CreateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	return nil, d.err
}
func (d downAPI) UpdateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	return nil, d.err
}
func (d downAPI) DeleteCustomer(ctx context.Context, id string) error { return d.err }

func (d downAPI) ListProducts(ctx context.Context) ([]model.Product, error) { return nil, d.err }
func (d downAPI) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return nil, d.err
}
func (d downAPI) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return nil, d.err
}
func (d downAPI) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return nil, d.err
}
func (d downAPI) DeleteProduct(ctx context.Context, id string) error { return d.err }

func (d downAPI) ListOrders(ctx context.Context) ([]model.Order, error) { return nil, d.err }
func (d downAPI) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return nil, d.err
}
func (d downAPI) CreateOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	return nil, d.err
}
func (d downAPI) UpdateOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	return nil, d.err
}
func (d downAPI) UpdateOrderStatus(ctx context.Context, id, status string) error { return d.err }
func (d downAPI) DeleteOrder(ctx context.Context, id string) error               { return d.err }

func newTestRouter(apiErr error, uploader Uploader) (*gin.Engine, *memory.Queue) {
	gin.SetMode(gin.TestMode)

	api := downAPI{err: apiErr}
	table := memory.NewTable()
	queue := memory.NewQueue()
	log := zap.NewNop()

	customers := service.NewCustomers(api, fallback.NewCustomers(table), log, nil)
	products := service.NewProducts(api, fallback.NewProducts(table), log, nil)
	orders := service.NewOrders(api, fallback.NewOrders(table), events.NewNotifier(queue), log, nil)

	r := gin.New()
	NewHandler(customers, products, orders, uploader).RegisterRoutes(r)
	return r, queue
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCustomerCRUDRoundTrip(t *testing.T) {
	r, _ := newTestRouter(errDown, nil)

	w := do(r, http.MethodPost, "/customers", map[string]any{
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"email":           "ada@example.com",
		"shippingAddress": "1 Analytical Way",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada", created.FirstName)

	w = do(r, http.MethodGet, "/customers/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	w = do(r, http.MethodPut, "/customers/"+created.ID, map[string]any{
		"firstName": "Ada",
		"lastName":  "King",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/customers/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/customers/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReturnsEmptyArrayNotNull(t *testing.T) {
	r, _ := newTestRouter(errDown, nil)

	w := do(r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestCreateOrderComputesTotalAndNotifies(t *testing.T) {
	r, queue := newTestRouter(errDown, nil)

	w := do(r, http.MethodPost, "/orders", map[string]any{
		"customerId": "c1",
		"productId":  "p1",
		"quantity":   3,
		"unitPrice":  9.5,
		"status":     "Submitted",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 28.5, created.TotalPrice)

	raw, err := queue.Dequeue(context.Background(), events.NotificationQueue)
	require.NoError(t, err)
	require.NotNil(t, raw, "fallback order create must queue a notification")
	var note map[string]any
	require.NoError(t, json.Unmarshal(raw, &note))
	assert.Equal(t, "order-created", note["type"])
	assert.Equal(t, created.ID, note["orderId"])
}

func TestUpdateOrderStatusNoContent(t *testing.T) {
	r, queue := newTestRouter(errDown, nil)

	w := do(r, http.MethodPost, "/orders", map[string]any{
		"customerId": "c1", "productId": "p1", "quantity": 1, "unitPrice": 5, "status": "Submitted",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	_, err := queue.Dequeue(context.Background(), events.NotificationQueue)
	require.NoError(t, err)

	w = do(r, http.MethodPatch, "/orders/"+created.ID+"/status", map[string]any{"status": "Processing"})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Processing", got.Status)

	raw, err := queue.Dequeue(context.Background(), events.NotificationQueue)
	require.NoError(t, err)
	require.NotNil(t, raw)
	var note map[string]any
	require.NoError(t, json.Unmarshal(raw, &note))
	assert.Equal(t, "order-status-updated", note["type"])
}

func TestCreateOrderRemoteFailurePropagatesAsBadGateway(t *testing.T) {
	r, queue := newTestRouter(&remote.StatusError{Code: 500}, nil)

	w := do(r, http.MethodPost, "/orders", map[string]any{
		"customerId": "c1", "productId": "p1", "quantity": 1, "unitPrice": 5, "status": "Submitted",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	raw, err := queue.Dequeue(context.Background(), events.NotificationQueue)
	require.NoError(t, err)
	assert.Nil(t, raw, "failed writes must not notify")
}

func TestCreateCustomerRejectsMalformedBody(t *testing.T) {
	r, _ := newTestRouter(errDown, nil)

	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeUploader struct {
	container string
	share     string
	dir       string
	file      string
	content   string
}

func (f *fakeUploader) UploadFile(ctx context.Context, containerName, fileName string, r io.Reader) (string, error) {
	b, _ := io.ReadAll(r)
	f.container, f.file, f.content = containerName, fileName, string(b)
	return "stored-" + fileName, nil
}

func (f *fakeUploader) UploadToFileShare(ctx context.Context, shareName, directoryName, fileName string, r io.Reader) (string, error) {
	f.share, f.dir, f.file = shareName, directoryName, fileName
	return "stored-" + fileName, nil
}

func TestUploadFile(t *testing.T) {
	up := &fakeUploader{}
	r, _ := newTestRouter(errDown, up)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("containerName", "product-images"))
	part, err := mw.CreateFormFile("file", "mug.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "product-images", up.container)
	assert.Equal(t, "mug.png", up.file)
	assert.Equal(t, "png-bytes", up.content)
	assert.JSONEq(t, `{"fileName":"stored-mug.png"}`, w.Body.String())
}

func TestUploadRoutesAbsentWithoutUploader(t *testing.T) {
	r, _ := newTestRouter(errDown, nil)

	w := do(r, http.MethodPost, "/uploads", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
