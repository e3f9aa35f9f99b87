package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/vaultkit/delegate-registry/internal/events"
	"github.com/vaultkit/delegate-registry/internal/logger"
	"github.com/vaultkit/delegate-registry/internal/registry"
)

// DelegationService handles business logic for delegation operations. All
// mutations flow through it so every state change is validated, logged and
// emitted exactly once.
type DelegationService struct {
	store    registry.Store
	resolver *registry.Resolver
	emitter  events.Emitter
	logger   *zap.Logger
}

// NewDelegationService creates a new delegation service over the given store.
func NewDelegationService(store registry.Store, emitter events.Emitter) *DelegationService {
	return &DelegationService{
		store:    store,
		resolver: registry.NewResolver(store),
		emitter:  emitter,
		logger:   logger.Log,
	}
}

// Grant enables (or re-enables) a delegation and returns its identity.
func (s *DelegationService) Grant(ctx context.Context, d registry.Delegation) (common.Hash, error) {
	return s.setDelegation(ctx, d, true)
}

// Revoke disables the delegation with the same scope and returns its identity.
// Revoking a scope that was never granted is a harmless no-op.
func (s *DelegationService) Revoke(ctx context.Context, d registry.Delegation) (common.Hash, error) {
	return s.setDelegation(ctx, d, false)
}

func (s *DelegationService) setDelegation(ctx context.Context, d registry.Delegation, enable bool) (common.Hash, error) {
	id, err := s.store.SetDelegation(ctx, d, enable)
	if err != nil {
		s.logger.Warn("Rejected delegation update",
			zap.String("from", d.From.Hex()),
			zap.String("to", d.To.Hex()),
			zap.String("type", d.Type.String()),
			zap.Bool("enable", enable),
			zap.Error(err))
		return common.Hash{}, fmt.Errorf("failed to update delegation: %w", err)
	}

	if s.emitter != nil {
		s.emitter.Emit(events.NewEvent(id, d, enable))
	}
	return id, nil
}

// GetDelegation returns the record stored under an identity, enabled or not.
// Unknown identities yield a TypeNone record, not an error.
func (s *DelegationService) GetDelegation(ctx context.Context, id common.Hash) (registry.Delegation, error) {
	rec, err := s.store.ReadRecord(ctx, id)
	if err != nil {
		s.logger.Error("Failed to read delegation record",
			zap.String("identity", id.Hex()),
			zap.Error(err))
		return registry.Delegation{}, fmt.Errorf("failed to read delegation: %w", err)
	}
	return rec, nil
}

// GetOutgoingDelegations returns every enabled delegation granted by a vault.
func (s *DelegationService) GetOutgoingDelegations(ctx context.Context, from common.Address) ([]registry.Delegation, error) {
	recs, err := s.store.OutgoingDelegations(ctx, from)
	if err != nil {
		s.logger.Error("Failed to list outgoing delegations",
			zap.String("from", from.Hex()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}
	return recs, nil
}

// CheckDelegate resolves an authorization query at the given granularity.
func (s *DelegationService) CheckDelegate(ctx context.Context, t registry.DelegationType, to, from, contract common.Address, tokenID *big.Int, rights common.Hash) (bool, error) {
	ok, err := s.resolver.Check(ctx, t, to, from, contract, tokenID, rights)
	if err != nil {
		s.logger.Error("Failed to resolve authorization check",
			zap.String("to", to.Hex()),
			zap.String("from", from.Hex()),
			zap.Error(err))
		return false, fmt.Errorf("failed to resolve check: %w", err)
	}
	return ok, nil
}
