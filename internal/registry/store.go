package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Store is the authoritative set of delegation records. Implementations must be
// safe for concurrent readers; mutations are serialized by the caller's
// environment (a single SetDelegation at a time per identity).
//
// Records are never physically deleted: revocation flips Enabled to false and the
// slot is retained so a later re-grant reuses it and history stays auditable.
type Store interface {
	// SetDelegation upserts the record for the delegation's identity. With
	// enable=true the record is (re)enabled with the given amount; with
	// enable=false the slot's Enabled flag is cleared, creating a disabled
	// placeholder if the slot never existed. Returns the identity either way.
	SetDelegation(ctx context.Context, d Delegation, enable bool) (common.Hash, error)

	// ReadRecord returns the stored record for an identity, enabled or not.
	// An identity that was never stored yields a TypeNone record and no error.
	ReadRecord(ctx context.Context, id common.Hash) (Delegation, error)

	// OutgoingDelegations returns every currently enabled record owned by the
	// vault, in no particular order.
	OutgoingDelegations(ctx context.Context, from common.Address) ([]Delegation, error)
}
