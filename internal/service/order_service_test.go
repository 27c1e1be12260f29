package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"agritradehub/internal/domain"
)

type stubOrderRepo struct {
	nextID uint
	rows   map[uint]*domain.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{rows: make(map[uint]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.nextID++
	o.ID = r.nextID
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	clone := *o
	r.rows[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.rows {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.ProductID != 0 && o.ProductID != f.ProductID {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uint, status string) (int64, error) {
	o, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return 1, nil
}

func (r *stubOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *stubOrderRepo) CountOpen(_ context.Context) (int64, error) {
	var n int64
	for _, o := range r.rows {
		if o.Status == domain.OrderPending || o.Status == domain.OrderOngoing {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) Revenue(_ context.Context) (float64, error) {
	var total float64
	for _, o := range r.rows {
		if o.Status == domain.OrderCompleted {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func newTestOrderService(t *testing.T) (*OrderService, *stubOrderRepo, *domain.Product) {
	t.Helper()
	products := newStubProductRepo()
	p := &domain.Product{Name: "Maize (90kg bag)", Price: "KSh 3,200", ImageURL: "/img/maize.jpg"}
	if err := products.Create(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	orders := newStubOrderRepo()
	return NewOrderService(orders, products), orders, p
}

func TestPlace_Success(t *testing.T) {
	svc, _, p := newTestOrderService(t)

	o, err := svc.Place(context.Background(), p.ID, "2 bags", 3200, "high", "deliver friday")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.ID == 0 || o.ProductName != p.Name || o.Status != domain.OrderPending {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.Priority != domain.PriorityHigh || o.TotalAmount != 3200 {
		t.Fatalf("unexpected order: %+v", o)
	}
}

func TestPlace_UnknownPriorityFallsBack(t *testing.T) {
	svc, _, p := newTestOrderService(t)

	o, err := svc.Place(context.Background(), p.ID, "", 0, "urgent!!", "")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.Priority != domain.PriorityMedium {
		t.Fatalf("priority = %q, want medium", o.Priority)
	}
}

func TestPlace_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestOrderService(t)

	if _, err := svc.Place(context.Background(), 999, "", 0, "", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Place(context.Background(), 0, "", 0, "", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero id, got %v", err)
	}
}

func TestSetStatus_Lifecycle(t *testing.T) {
	svc, repo, p := newTestOrderService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, p.ID, "", 100, "", "")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	for _, status := range []string{domain.OrderOngoing, domain.OrderCompleted} {
		if err := svc.SetStatus(ctx, o.ID, status); err != nil {
			t.Fatalf("SetStatus(%s): %v", status, err)
		}
		if repo.rows[o.ID].Status != status {
			t.Fatalf("stored status = %q, want %q", repo.rows[o.ID].Status, status)
		}
	}

	if err := svc.SetStatus(ctx, o.ID, "shipped"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown status accepted: %v", err)
	}
	if err := svc.SetStatus(ctx, 999, domain.OrderCancelled); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing order: expected ErrNotFound, got %v", err)
	}
}

func TestOrderList_StatusFilter(t *testing.T) {
	svc, _, p := newTestOrderService(t)
	ctx := context.Background()

	first, err := svc.Place(ctx, p.ID, "", 100, "", "")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := svc.Place(ctx, p.ID, "", 200, "", ""); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := svc.SetStatus(ctx, first.ID, domain.OrderCompleted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	completed, err := svc.List(ctx, domain.OrderCompleted, 0, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != first.ID {
		t.Fatalf("filtered listing: %+v", completed)
	}

	if _, err := svc.List(ctx, "shipped", 0, 0, 10); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown status filter accepted: %v", err)
	}
}

func TestOrderExportCSV_AllRows(t *testing.T) {
	svc, _, p := newTestOrderService(t)
	ctx := context.Background()

	total := MaxPageLimit + 25
	for i := 0; i < total; i++ {
		if _, err := svc.Place(ctx, p.ID, "1 bag", 100, "", ""); err != nil {
			t.Fatalf("Place #%d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	lines := strings.Count(strings.TrimRight(buf.String(), "\n"), "\n") + 1
	if lines != total+1 {
		t.Fatalf("export has %d lines, want %d (header + %d rows)", lines, total+1, total)
	}
}
