package registry

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

var (
	testVault    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testDelegate = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testContract = common.HexToAddress("0x3333333333333333333333333333333333333333")
	testRights   = common.HexToHash("0x00000000000000000000000000000000000000000000000000000000deadbeef")
)

func TestIdentity_Deterministic(t *testing.T) {
	a := Identity(TypeERC721, testVault, testDelegate, testContract, big.NewInt(7), testRights)
	b := Identity(TypeERC721, testVault, testDelegate, testContract, big.NewInt(7), testRights)
	assert.Equal(t, a, b)
	assert.NotEqual(t, common.Hash{}, a)
}

func TestIdentity_BindsEveryScopeField(t *testing.T) {
	base := Identity(TypeERC721, testVault, testDelegate, testContract, big.NewInt(7), testRights)

	variants := map[string]common.Hash{
		"type":     Identity(TypeERC1155, testVault, testDelegate, testContract, big.NewInt(7), testRights),
		"from":     Identity(TypeERC721, testDelegate, testDelegate, testContract, big.NewInt(7), testRights),
		"to":       Identity(TypeERC721, testVault, testContract, testContract, big.NewInt(7), testRights),
		"contract": Identity(TypeERC721, testVault, testDelegate, testVault, big.NewInt(7), testRights),
		"token id": Identity(TypeERC721, testVault, testDelegate, testContract, big.NewInt(8), testRights),
		"rights":   Identity(TypeERC721, testVault, testDelegate, testContract, big.NewInt(7), RightsAll),
	}
	for field, id := range variants {
		assert.NotEqual(t, base, id, "changing %s must change the identity", field)
	}
}

func TestIdentity_NilTokenIDEqualsZero(t *testing.T) {
	withNil := Identity(TypeContract, testVault, testDelegate, testContract, nil, testRights)
	withZero := Identity(TypeContract, testVault, testDelegate, testContract, big.NewInt(0), testRights)
	assert.Equal(t, withNil, withZero)
}

func TestIdentity_ExcludesEnabledAndAmount(t *testing.T) {
	d := Delegation{
		Type:     TypeERC20,
		From:     testVault,
		To:       testDelegate,
		Contract: testContract,
		Rights:   testRights,
		Amount:   big.NewInt(100),
	}
	id := d.Identity()

	d.Amount = big.NewInt(999)
	d.Enabled = true
	assert.Equal(t, id, d.Identity())
}
