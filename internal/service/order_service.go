package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"agritradehub/internal/domain"
)

type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
}

func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Place records a pending order against a catalog entry. The product name
// is copied onto the order; an unknown priority falls back to medium
// rather than failing the order.
func (s *OrderService) Place(ctx context.Context, productID uint, quantity string, unitPrice float64, priority, notes string) (*domain.Order, error) {
	quantity = strings.TrimSpace(quantity)
	notes = strings.TrimSpace(notes)
	if productID == 0 || unitPrice < 0 {
		return nil, domain.ErrValidation
	}
	if len(quantity) > 50 || len(notes) > 500 {
		return nil, domain.ErrValidation
	}
	if !domain.ValidPriority(priority) {
		priority = domain.PriorityMedium
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	o := &domain.Order{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice,
		Status:      domain.OrderPending,
		Priority:    priority,
		Notes:       notes,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, status string, productID uint, offset, limit int) ([]domain.Order, error) {
	if status != "" && !domain.ValidOrderStatus(status) {
		return nil, domain.ErrValidation
	}
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.List(ctx, domain.OrderFilter{
		Status:    status,
		ProductID: productID,
		Offset:    offset,
		Limit:     limit,
	})
}

// SetStatus moves an order through its lifecycle.
func (s *OrderService) SetStatus(ctx context.Context, id uint, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.ErrValidation
	}
	n, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExportCSV writes every order, paging through the store until exhausted.
func (s *OrderService) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "product_id", "product_name", "quantity",
		"unit_price", "total_amount", "status", "priority", "notes", "created_at"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for offset := 0; ; offset += MaxPageLimit {
		os, err := s.orders.List(ctx, domain.OrderFilter{Offset: offset, Limit: MaxPageLimit})
		if err != nil {
			return err
		}
		for _, o := range os {
			rec := []string{
				strconv.FormatUint(uint64(o.ID), 10),
				strconv.FormatUint(uint64(o.ProductID), 10),
				o.ProductName,
				o.Quantity,
				strconv.FormatFloat(o.UnitPrice, 'f', 2, 64),
				strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
				o.Status,
				o.Priority,
				o.Notes,
				o.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		if len(os) < MaxPageLimit {
			break
		}
	}
	cw.Flush()
	return cw.Error()
}
