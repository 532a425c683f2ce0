// Package codes issues ticket codes under a configurable uniqueness
// policy.
package codes

import (
	"context"
	"fmt"
	"sync"

	"ms-venue/internal/models"
	"ms-venue/internal/utils"
)

// Generator produces a candidate ticket code.
type Generator func() (string, error)

// Policy hands out the code for a new ticket.
type Policy interface {
	Next(ctx context.Context) (string, error)
}

// Registry records codes already handed out. Claim reports false when the
// code was taken before.
type Registry interface {
	Claim(ctx context.Context, code string) (bool, error)
}

// AcceptAsIs returns every generated code without checking earlier ones.
// Collisions are possible, if unlikely, with 62^8 codes.
type AcceptAsIs struct {
	Generate Generator
}

func NewAcceptAsIs() *AcceptAsIs {
	return &AcceptAsIs{Generate: utils.GenerateTicketCode}
}

func (p *AcceptAsIs) Next(ctx context.Context) (string, error) {
	return p.Generate()
}

// RejectAndRetry regenerates on collision, up to MaxAttempts draws.
type RejectAndRetry struct {
	Generate    Generator
	Registry    Registry
	MaxAttempts int
}

func NewRejectAndRetry(registry Registry, maxAttempts int) *RejectAndRetry {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RejectAndRetry{
		Generate:    utils.GenerateTicketCode,
		Registry:    registry,
		MaxAttempts: maxAttempts,
	}
}

func (p *RejectAndRetry) Next(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		code, err := p.Generate()
		if err != nil {
			return "", err
		}
		ok, err := p.Registry.Claim(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to claim ticket code: %w", err)
		}
		if ok {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", models.ErrCodeCollision, p.MaxAttempts)
}

// MemoryRegistry keeps claimed codes for the lifetime of the process.
type MemoryRegistry struct {
	mu    sync.Mutex
	codes map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{codes: make(map[string]struct{})}
}

func (r *MemoryRegistry) Claim(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.codes[code]; taken {
		return false, nil
	}
	r.codes[code] = struct{}{}
	return true, nil
}
