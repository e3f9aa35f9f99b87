package events

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaultkit/delegate-registry/internal/registry"
)

// DelegationChanged records one grant or revocation. It carries the full scope
// tuple so an audit trail can be rebuilt without reading the store.
type DelegationChanged struct {
	ID       uuid.UUID               `json:"id"`
	Identity common.Hash             `json:"identity"`
	Type     registry.DelegationType `json:"type"`
	From     common.Address          `json:"from"`
	To       common.Address          `json:"to"`
	Contract common.Address          `json:"contract"`
	TokenID  *big.Int                `json:"token_id,omitempty"`
	Rights   common.Hash             `json:"rights"`
	Enabled  bool                    `json:"enabled"`
	At       time.Time               `json:"at"`
}

// Emitter receives delegation change events after a successful mutation.
// Implementations must not block the mutation path for long.
type Emitter interface {
	Emit(event DelegationChanged)
}

// NewEvent stamps a change with an event ID and emission time.
func NewEvent(id common.Hash, d registry.Delegation, enabled bool) DelegationChanged {
	return DelegationChanged{
		ID:       uuid.New(),
		Identity: id,
		Type:     d.Type,
		From:     d.From,
		To:       d.To,
		Contract: d.Contract,
		TokenID:  d.TokenID,
		Rights:   d.Rights,
		Enabled:  enabled,
		At:       time.Now().UTC(),
	}
}

// LogEmitter writes every event to the structured log. It is the default audit
// sink; durable broadcast belongs to whatever consumes the log stream.
type LogEmitter struct {
	logger *zap.Logger
}

// NewLogEmitter creates an emitter over the given logger.
func NewLogEmitter(logger *zap.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

// Emit implements Emitter.
func (e *LogEmitter) Emit(ev DelegationChanged) {
	e.logger.Info("delegation changed",
		zap.String("event_id", ev.ID.String()),
		zap.String("identity", ev.Identity.Hex()),
		zap.String("type", ev.Type.String()),
		zap.String("from", ev.From.Hex()),
		zap.String("to", ev.To.Hex()),
		zap.String("contract", ev.Contract.Hex()),
		zap.String("rights", ev.Rights.Hex()),
		zap.Bool("enabled", ev.Enabled),
	)
}

// MemoryEmitter collects events in memory; used by tests to assert emission.
type MemoryEmitter struct {
	mu     sync.Mutex
	events []DelegationChanged
}

// Emit implements Emitter.
func (e *MemoryEmitter) Emit(ev DelegationChanged) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

// Events returns a copy of everything emitted so far.
func (e *MemoryEmitter) Events() []DelegationChanged {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]DelegationChanged, len(e.events))
	copy(out, e.events)
	return out
}
