package registry

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInvalidDelegationType is returned when a grant names TypeNone or an
	// undefined type; TypeNone is a read-only sentinel, never a storable value.
	ErrInvalidDelegationType = errors.New("invalid delegation type")

	// ErrSelfDelegation is returned when a vault tries to delegate to itself.
	ErrSelfDelegation = errors.New("cannot delegate to self")

	// ErrInvalidScope is returned when contract, token ID or amount are supplied
	// for a delegation type that does not scope to them.
	ErrInvalidScope = errors.New("invalid scope for delegation type")

	// ErrTokenIDTooLarge is returned when a token ID does not fit in 256 bits.
	ErrTokenIDTooLarge = errors.New("token id exceeds 256 bits")
)

// Validate rejects malformed grants before any state is touched. A rejected
// delegation never reaches storage, so there are no partial writes to unwind.
func Validate(d Delegation) error {
	switch d.Type {
	case TypeAll, TypeContract, TypeERC721, TypeERC20, TypeERC1155:
	default:
		return ErrInvalidDelegationType
	}
	if d.To == d.From {
		return ErrSelfDelegation
	}
	if !d.Type.contractScoped() && d.Contract != (common.Address{}) {
		return ErrInvalidScope
	}
	if !d.Type.tokenScoped() && d.TokenID != nil && d.TokenID.Sign() != 0 {
		return ErrInvalidScope
	}
	if d.TokenID != nil && d.TokenID.Sign() < 0 {
		return ErrInvalidScope
	}
	if d.TokenID != nil && d.TokenID.BitLen() > 256 {
		return ErrTokenIDTooLarge
	}
	if d.Amount != nil && d.Amount.Sign() < 0 {
		return ErrInvalidScope
	}
	return nil
}
