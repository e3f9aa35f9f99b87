package service_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vaultkit/delegate-registry/internal/events"
	"github.com/vaultkit/delegate-registry/internal/logger"
	"github.com/vaultkit/delegate-registry/internal/mocks"
	"github.com/vaultkit/delegate-registry/internal/registry"
	"github.com/vaultkit/delegate-registry/internal/service"
)

func init() {
	logger.InitLogger("test")
}

var (
	vault    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	delegate = common.HexToAddress("0x2222222222222222222222222222222222222222")
	contract = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func walletGrant() registry.Delegation {
	return registry.Delegation{
		Type: registry.TypeAll,
		From: vault,
		To:   delegate,
	}
}

func TestDelegationService_GrantEmitsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	emitter := &events.MemoryEmitter{}
	svc := service.NewDelegationService(mockStore, emitter)
	ctx := context.Background()

	d := walletGrant()
	wantID := d.Identity()
	mockStore.EXPECT().SetDelegation(ctx, d, true).Return(wantID, nil)

	id, err := svc.Grant(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, wantID, id)

	emitted := emitter.Events()
	require.Len(t, emitted, 1)
	assert.Equal(t, wantID, emitted[0].Identity)
	assert.Equal(t, registry.TypeAll, emitted[0].Type)
	assert.Equal(t, vault, emitted[0].From)
	assert.Equal(t, delegate, emitted[0].To)
	assert.True(t, emitted[0].Enabled)
	assert.NotEqual(t, emitted[0].ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestDelegationService_RevokeEmitsDisabledEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	emitter := &events.MemoryEmitter{}
	svc := service.NewDelegationService(mockStore, emitter)
	ctx := context.Background()

	d := walletGrant()
	mockStore.EXPECT().SetDelegation(ctx, d, false).Return(d.Identity(), nil)

	_, err := svc.Revoke(ctx, d)
	require.NoError(t, err)

	emitted := emitter.Events()
	require.Len(t, emitted, 1)
	assert.False(t, emitted[0].Enabled)
}

func TestDelegationService_RejectedGrantEmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	emitter := &events.MemoryEmitter{}
	svc := service.NewDelegationService(mockStore, emitter)
	ctx := context.Background()

	d := walletGrant()
	d.To = d.From
	mockStore.EXPECT().SetDelegation(ctx, d, true).Return(common.Hash{}, registry.ErrSelfDelegation)

	_, err := svc.Grant(ctx, d)
	assert.ErrorIs(t, err, registry.ErrSelfDelegation)
	assert.Empty(t, emitter.Events())
}

func TestDelegationService_GetDelegation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	svc := service.NewDelegationService(mockStore, nil)
	ctx := context.Background()

	d := walletGrant()
	d.Enabled = true
	id := d.Identity()

	tests := []struct {
		name       string
		setupMocks func()
		wantType   registry.DelegationType
		wantErr    bool
	}{
		{
			name: "known identity",
			setupMocks: func() {
				mockStore.EXPECT().ReadRecord(ctx, id).Return(d, nil)
			},
			wantType: registry.TypeAll,
		},
		{
			name: "unknown identity yields none sentinel",
			setupMocks: func() {
				mockStore.EXPECT().ReadRecord(ctx, id).Return(registry.Delegation{Type: registry.TypeNone}, nil)
			},
			wantType: registry.TypeNone,
		},
		{
			name: "store failure",
			setupMocks: func() {
				mockStore.EXPECT().ReadRecord(ctx, id).Return(registry.Delegation{}, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			rec, err := svc.GetDelegation(ctx, id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, rec.Type)
		})
	}
}

func TestDelegationService_GetOutgoingDelegations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	svc := service.NewDelegationService(mockStore, nil)
	ctx := context.Background()

	d := walletGrant()
	d.Enabled = true
	mockStore.EXPECT().OutgoingDelegations(ctx, vault).Return([]registry.Delegation{d}, nil)

	recs, err := svc.GetOutgoingDelegations(ctx, vault)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, delegate, recs[0].To)

	mockStore.EXPECT().OutgoingDelegations(ctx, vault).Return(nil, errors.New("connection reset"))
	_, err = svc.GetOutgoingDelegations(ctx, vault)
	assert.Error(t, err)
}

func TestDelegationService_CheckDelegate(t *testing.T) {
	// End-to-end over the real store: the service wires the resolver itself.
	store := registry.NewMemoryStore()
	svc := service.NewDelegationService(store, nil)
	ctx := context.Background()

	_, err := svc.Grant(ctx, registry.Delegation{
		Type:     registry.TypeContract,
		From:     vault,
		To:       delegate,
		Contract: contract,
	})
	require.NoError(t, err)

	ok, err := svc.CheckDelegate(ctx, registry.TypeERC721, delegate, vault, contract, big.NewInt(7), registry.RightsAll)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckDelegate(ctx, registry.TypeAll, delegate, vault, common.Address{}, nil, registry.RightsAll)
	require.NoError(t, err)
	assert.False(t, ok)
}
