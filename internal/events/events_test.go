package events

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vaultkit/delegate-registry/internal/registry"
)

func TestNewEvent_CarriesFullScope(t *testing.T) {
	d := registry.Delegation{
		Type:     registry.TypeERC1155,
		From:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		To:       common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Contract: common.HexToAddress("0x3333333333333333333333333333333333333333"),
		TokenID:  big.NewInt(42),
		Rights:   common.HexToHash("0xbeef"),
	}
	id := d.Identity()

	ev := NewEvent(id, d, true)
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, id, ev.Identity)
	assert.Equal(t, d.Type, ev.Type)
	assert.Equal(t, d.From, ev.From)
	assert.Equal(t, d.To, ev.To)
	assert.Equal(t, d.Contract, ev.Contract)
	assert.Equal(t, d.TokenID, ev.TokenID)
	assert.Equal(t, d.Rights, ev.Rights)
	assert.True(t, ev.Enabled)
	assert.False(t, ev.At.IsZero())
}

func TestMemoryEmitter_CollectsInOrder(t *testing.T) {
	e := &MemoryEmitter{}
	d := registry.Delegation{Type: registry.TypeAll}

	e.Emit(NewEvent(d.Identity(), d, true))
	e.Emit(NewEvent(d.Identity(), d, false))

	got := e.Events()
	assert.Len(t, got, 2)
	assert.True(t, got[0].Enabled)
	assert.False(t, got[1].Enabled)
}
