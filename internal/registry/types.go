package registry

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DelegationType is the granularity of a delegation grant.
type DelegationType uint8

const (
	// TypeNone is the miss sentinel returned by lookups; it is never stored.
	TypeNone DelegationType = iota
	// TypeAll grants authority over the vault's entire wallet.
	TypeAll
	// TypeContract grants authority over a single contract.
	TypeContract
	// TypeERC721 grants authority over a specific token of a contract.
	TypeERC721
	// TypeERC20 grants authority over a fungible token balance of a contract.
	TypeERC20
	// TypeERC1155 grants authority over a specific token balance of a contract.
	TypeERC1155
)

// String returns the lowercase wire name of the delegation type.
func (t DelegationType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeAll:
		return "all"
	case TypeContract:
		return "contract"
	case TypeERC721:
		return "erc721"
	case TypeERC20:
		return "erc20"
	case TypeERC1155:
		return "erc1155"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseDelegationType parses the wire name of a delegation type.
func ParseDelegationType(s string) (DelegationType, error) {
	switch strings.ToLower(s) {
	case "all":
		return TypeAll, nil
	case "contract":
		return TypeContract, nil
	case "erc721":
		return TypeERC721, nil
	case "erc20":
		return TypeERC20, nil
	case "erc1155":
		return TypeERC1155, nil
	default:
		return TypeNone, fmt.Errorf("unknown delegation type %q", s)
	}
}

// RightsAll is the zero rights tag; a record carrying it grants every sub-right.
var RightsAll = common.Hash{}

// Delegation is one granted (or previously granted, now revoked) authority from a
// vault to a delegate. Contract, TokenID and Amount are meaningful only for the
// types that scope to them; validation requires they are zero everywhere else.
type Delegation struct {
	Type     DelegationType `json:"type"`
	From     common.Address `json:"from"`
	To       common.Address `json:"to"`
	Contract common.Address `json:"contract"`
	TokenID  *big.Int       `json:"token_id,omitempty"`
	Amount   *big.Int       `json:"amount,omitempty"`
	Rights   common.Hash    `json:"rights"`
	Enabled  bool           `json:"enabled"`
}

// Identity computes the record's storage key. The key deterministically binds
// exactly (type, from, to, rights, contract, tokenId); Enabled and Amount are
// excluded so toggling or re-capping an otherwise identical grant reuses the slot.
func (d Delegation) Identity() common.Hash {
	return Identity(d.Type, d.From, d.To, d.Contract, d.TokenID, d.Rights)
}

// clone returns a copy with its own big.Int values so callers cannot alias
// store-owned state.
func (d Delegation) clone() Delegation {
	if d.TokenID != nil {
		d.TokenID = new(big.Int).Set(d.TokenID)
	}
	if d.Amount != nil {
		d.Amount = new(big.Int).Set(d.Amount)
	}
	return d
}

// tokenScoped reports whether the type carries a token ID.
func (t DelegationType) tokenScoped() bool {
	return t == TypeERC721 || t == TypeERC1155
}

// contractScoped reports whether the type carries a contract address.
func (t DelegationType) contractScoped() bool {
	return t != TypeNone && t != TypeAll
}
