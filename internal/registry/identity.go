package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// identityLen is the packed width of the hashed scope tuple:
// 1 type byte, three 20-byte addresses, a 32-byte token ID and a 32-byte rights tag.
const identityLen = 1 + 3*common.AddressLength + 2*common.HashLength

// Identity hashes a delegation scope into its storage key. Two grants with the
// same scope always map to the same key, which is what makes granting idempotent:
// a repeat grant overwrites its own slot instead of accumulating duplicates.
//
// A nil tokenID hashes identically to a zero one.
func Identity(t DelegationType, from, to, contract common.Address, tokenID *big.Int, rights common.Hash) common.Hash {
	var buf [identityLen]byte
	buf[0] = byte(t)
	copy(buf[1:21], from[:])
	copy(buf[21:41], to[:])
	copy(buf[41:61], contract[:])
	if tokenID != nil {
		tokenID.FillBytes(buf[61:93])
	}
	copy(buf[93:125], rights[:])
	return crypto.Keccak256Hash(buf[:])
}
