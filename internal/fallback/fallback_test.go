package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/storage/memory"
)

func TestCustomerCreateGeneratesIDBeforeWrite(t *testing.T) {
	table := memory.NewTable()
	f := NewCustomers(table)
	ctx := context.Background()

	created, err := f.Create(ctx, &model.Customer{FirstName: "Jo", LastName: "Bee"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated identifier")
	}
	if created.Partition != model.PartitionCustomer {
		t.Errorf("partition = %q, want %q", created.Partition, model.PartitionCustomer)
	}

	// The persisted record and the returned record must agree.
	stored, err := f.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *stored != *created {
		t.Errorf("stored %+v differs from returned %+v", *stored, *created)
	}
}

func TestCustomerCreateKeepsSuppliedID(t *testing.T) {
	f := NewCustomers(memory.NewTable())

	created, err := f.Create(context.Background(), &model.Customer{ID: "c42", FirstName: "Jo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "c42" {
		t.Errorf("id = %q, want c42", created.ID)
	}
}

func TestGeneratedIDsDoNotCollide(t *testing.T) {
	f := NewOrders(memory.NewTable())
	ctx := context.Background()

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		created, err := f.Create(ctx, &model.Order{Status: "Submitted"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if created.ID == "" {
			t.Fatalf("create %d: empty identifier", i)
		}
		if _, dup := seen[created.ID]; dup {
			t.Fatalf("create %d: identifier collision %s", i, created.ID)
		}
		seen[created.ID] = struct{}{}
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	f := NewProducts(memory.NewTable())

	_, err := f.Get(context.Background(), "nope")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected model.ErrNotFound, got %v", err)
	}
}

func TestOrderUpdateStatusPatchesOnlyStatus(t *testing.T) {
	f := NewOrders(memory.NewTable())
	ctx := context.Background()

	created, err := f.Create(ctx, &model.Order{
		CustomerID: "c1",
		ProductID:  "p1",
		Quantity:   3,
		UnitPrice:  10,
		TotalPrice: 30,
		Status:     "Submitted",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := f.UpdateStatus(ctx, created.ID, "Processing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "Processing" {
		t.Errorf("status = %q, want Processing", updated.Status)
	}

	stored, err := f.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := *created
	want.Status = "Processing"
	if *stored != want {
		t.Errorf("persisted order %+v, want %+v (only status changed)", *stored, want)
	}
}

func TestOrderUpdateStatusMissingOrder(t *testing.T) {
	f := NewOrders(memory.NewTable())

	_, err := f.UpdateStatus(context.Background(), "ghost", "Processing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected model.ErrNotFound, got %v", err)
	}
}

func TestListReturnsOnlyOwnPartition(t *testing.T) {
	table := memory.NewTable()
	ctx := context.Background()

	customers := NewCustomers(table)
	orders := NewOrders(table)

	if _, err := customers.Create(ctx, &model.Customer{FirstName: "Jo"}); err != nil {
		t.Fatal(err)
	}
	if _, err := orders.Create(ctx, &model.Order{Status: "Submitted"}); err != nil {
		t.Fatal(err)
	}

	got, err := customers.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 customer, got %d", len(got))
	}
}

func TestUpdateOverwritesWholeEntity(t *testing.T) {
	f := NewProducts(memory.NewTable())
	ctx := context.Background()

	created, err := f.Create(ctx, &model.Product{Name: "Mug", Price: 4})
	if err != nil {
		t.Fatal(err)
	}

	created.Name = "Big Mug"
	created.Price = 6
	if _, err := f.Update(ctx, created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := f.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Big Mug" || stored.Price != 6 {
		t.Errorf("update not persisted: %+v", *stored)
	}
}

func TestDelete(t *testing.T) {
	f := NewCustomers(memory.NewTable())
	ctx := context.Background()

	created, err := f.Create(ctx, &model.Customer{FirstName: "Jo"})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.Get(ctx, created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected model.ErrNotFound after delete, got %v", err)
	}
}
