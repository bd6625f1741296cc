package requestRegistry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minchenkova509/telegram-bot/internal/domain"
)

// Registry is the shared collection of document requests, keyed by the
// driver they were assigned to. One mutex guards the whole structure so
// that every operation is atomic, including the duplicate check in Assign.
type Registry struct {
	mu       sync.Mutex
	byDriver map[string][]*domain.Request
}

func NewRegistry() *Registry {
	return &Registry{
		byDriver: make(map[string][]*domain.Request),
	}
}

// Assign appends a Created request under its driver. A request number that
// is still active anywhere in the registry is rejected with
// domain.ErrDuplicateRequest; the check and the insert are one atomic unit.
func (r *Registry) Assign(ctx context.Context, req domain.Request) error {
	const op = "requestRegistry.Assign"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, list := range r.byDriver {
		for _, existing := range list {
			if existing.ID == req.ID && existing.Status == domain.StatusCreated {
				return fmt.Errorf("%s: заявка %s: %w", op, req.ID, domain.ErrDuplicateRequest)
			}
		}
	}

	req.Status = domain.StatusCreated
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	r.byDriver[req.Driver] = append(r.byDriver[req.Driver], &req)
	return nil
}

// ListFor returns the driver's active requests, oldest first. Fulfilled
// requests stay in the registry but are never listed.
func (r *Registry) ListFor(ctx context.Context, driver string) []domain.Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Request, 0, len(r.byDriver[driver]))
	for _, req := range r.byDriver[driver] {
		if req.Status == domain.StatusCreated {
			result = append(result, *req)
		}
	}
	return result
}

// Find returns the driver's active request with the given id.
func (r *Registry) Find(ctx context.Context, driver, id string) (domain.Request, error) {
	const op = "requestRegistry.Find"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.byDriver[driver] {
		if req.ID == id && req.Status == domain.StatusCreated {
			return *req, nil
		}
	}
	return domain.Request{}, fmt.Errorf("%s: заявка %s: %w", op, id, domain.ErrRequestNotFound)
}

// Fulfill marks the driver's active request with the given id as fulfilled.
func (r *Registry) Fulfill(ctx context.Context, driver, id string) (domain.Request, error) {
	const op = "requestRegistry.Fulfill"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.byDriver[driver] {
		if req.ID == id && req.Status == domain.StatusCreated {
			req.Status = domain.StatusFulfilled
			return *req, nil
		}
	}
	return domain.Request{}, fmt.Errorf("%s: заявка %s: %w", op, id, domain.ErrRequestNotFound)
}
