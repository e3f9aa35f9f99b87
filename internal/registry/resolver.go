package registry

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Resolver answers authorization queries over a Store. It walks the granularity
// levels from most specific to least (token, contract, wallet); any enabled
// record at any level authorizes. The levels are a union, not an override:
// revoking a wallet-level grant does not revoke a still-enabled token-level one.
//
// Rights matching: a record satisfies a query when its rights tag equals the
// queried tag, or when the record carries the zero tag (which grants every
// sub-right). A query for the zero tag is satisfied only by a zero-tag record.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// CheckDelegateForAll reports whether to may act for from across the entire
// wallet under the given rights tag.
func (r *Resolver) CheckDelegateForAll(ctx context.Context, to, from common.Address, rights common.Hash) (bool, error) {
	return r.probe(ctx, TypeAll, to, from, common.Address{}, nil, rights)
}

// CheckDelegateForContract reports whether to may act for from on the given
// contract, via a contract-level or wallet-level grant.
func (r *Resolver) CheckDelegateForContract(ctx context.Context, to, from, contract common.Address, rights common.Hash) (bool, error) {
	ok, err := r.probe(ctx, TypeContract, to, from, contract, nil, rights)
	if ok || err != nil {
		return ok, err
	}
	return r.CheckDelegateForAll(ctx, to, from, rights)
}

// CheckDelegateForERC721 reports whether to may act for from on a specific
// ERC721 token, via a token-, contract- or wallet-level grant.
func (r *Resolver) CheckDelegateForERC721(ctx context.Context, to, from, contract common.Address, tokenID *big.Int, rights common.Hash) (bool, error) {
	ok, err := r.probe(ctx, TypeERC721, to, from, contract, tokenID, rights)
	if ok || err != nil {
		return ok, err
	}
	return r.CheckDelegateForContract(ctx, to, from, contract, rights)
}

// CheckDelegateForERC20 reports whether to may act for from on a fungible token
// balance. Amount caps on the matched record are informational at this layer;
// any enabled match authorizes.
func (r *Resolver) CheckDelegateForERC20(ctx context.Context, to, from, contract common.Address, rights common.Hash) (bool, error) {
	ok, err := r.probe(ctx, TypeERC20, to, from, contract, nil, rights)
	if ok || err != nil {
		return ok, err
	}
	return r.CheckDelegateForContract(ctx, to, from, contract, rights)
}

// CheckDelegateForERC1155 reports whether to may act for from on a specific
// ERC1155 token balance, via a token-, contract- or wallet-level grant.
func (r *Resolver) CheckDelegateForERC1155(ctx context.Context, to, from, contract common.Address, tokenID *big.Int, rights common.Hash) (bool, error) {
	ok, err := r.probe(ctx, TypeERC1155, to, from, contract, tokenID, rights)
	if ok || err != nil {
		return ok, err
	}
	return r.CheckDelegateForContract(ctx, to, from, contract, rights)
}

// Check dispatches an authorization query by delegation type. TypeAll ignores
// contract and tokenID; TypeContract and TypeERC20 ignore tokenID.
func (r *Resolver) Check(ctx context.Context, t DelegationType, to, from, contract common.Address, tokenID *big.Int, rights common.Hash) (bool, error) {
	switch t {
	case TypeAll:
		return r.CheckDelegateForAll(ctx, to, from, rights)
	case TypeContract:
		return r.CheckDelegateForContract(ctx, to, from, contract, rights)
	case TypeERC721:
		return r.CheckDelegateForERC721(ctx, to, from, contract, tokenID, rights)
	case TypeERC20:
		return r.CheckDelegateForERC20(ctx, to, from, contract, rights)
	case TypeERC1155:
		return r.CheckDelegateForERC1155(ctx, to, from, contract, tokenID, rights)
	default:
		return false, nil
	}
}

// probe looks up the single slot for a scope at one granularity level, first
// under the queried rights tag and then, for a non-zero query, under the zero
// tag. Absence is a plain false, never an error.
func (r *Resolver) probe(ctx context.Context, t DelegationType, to, from, contract common.Address, tokenID *big.Int, rights common.Hash) (bool, error) {
	// An out-of-range token ID can never match a stored record.
	if tokenID != nil && (tokenID.Sign() < 0 || tokenID.BitLen() > 256) {
		return false, nil
	}
	rec, err := r.store.ReadRecord(ctx, Identity(t, from, to, contract, tokenID, rights))
	if err != nil {
		return false, err
	}
	if rec.Type != TypeNone && rec.Enabled {
		return true, nil
	}
	if rights == RightsAll {
		return false, nil
	}
	rec, err = r.store.ReadRecord(ctx, Identity(t, from, to, contract, tokenID, RightsAll))
	if err != nil {
		return false, err
	}
	return rec.Type != TypeNone && rec.Enabled, nil
}
