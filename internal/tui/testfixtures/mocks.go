// Package testfixtures provides fakes and helpers for TUI tests:
//   - Key and Type build key presses for Update-driven tests
//   - EmptyState and CompleteState return sample drafts
//   - OrderService records checkouts without a NATS server
//
// All mocks are safe for concurrent use.
package testfixtures

import (
	"context"
	"sync"

	"github.com/bandhan/bandhan/internal/order"
)

// OrderService is a fake order.Service.
type OrderService struct {
	mu sync.Mutex

	// Receipt returned from Submit
	Receipt order.Receipt
	// Error returned from Submit
	Err error

	requests []order.Request
}

func NewOrderService(receipt order.Receipt) *OrderService {
	return &OrderService{Receipt: receipt}
}

func (s *OrderService) Submit(_ context.Context, req order.Request) (order.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.Err != nil {
		return order.Receipt{}, s.Err
	}
	return s.Receipt, nil
}

// Requests returns the submitted requests in order.
func (s *OrderService) Requests() []order.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.Request(nil), s.requests...)
}
