package handlers

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vaultkit/delegate-registry/internal/registry"
)

// SetDelegationRequest is the body of POST /delegations. TokenID and Amount are
// decimal strings so uint256 values survive JSON. Rights is a 32-byte hex tag;
// empty or omitted means the unrestricted zero tag.
type SetDelegationRequest struct {
	Type     string `json:"type" binding:"required"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	Contract string `json:"contract,omitempty"`
	TokenID  string `json:"token_id,omitempty"`
	Amount   string `json:"amount,omitempty"`
	Rights   string `json:"rights,omitempty"`
	Enable   bool   `json:"enable"`
}

// DelegationResponse is the wire form of a delegation record.
type DelegationResponse struct {
	Identity string `json:"identity"`
	Type     string `json:"type"`
	From     string `json:"from"`
	To       string `json:"to"`
	Contract string `json:"contract,omitempty"`
	TokenID  string `json:"token_id,omitempty"`
	Amount   string `json:"amount,omitempty"`
	Rights   string `json:"rights"`
	Enabled  bool   `json:"enabled"`
}

// CheckResponse is the result of an authorization query.
type CheckResponse struct {
	Valid bool `json:"valid"`
}

// toDelegation converts a request body into a registry record. Scope-shape
// errors are left to registry.Validate; this only rejects unparseable fields.
func (r SetDelegationRequest) toDelegation() (registry.Delegation, error) {
	var d registry.Delegation

	t, err := registry.ParseDelegationType(r.Type)
	if err != nil {
		return d, err
	}
	d.Type = t

	if d.From, err = parseAddress("from", r.From); err != nil {
		return d, err
	}
	if d.To, err = parseAddress("to", r.To); err != nil {
		return d, err
	}
	if r.Contract != "" {
		if d.Contract, err = parseAddress("contract", r.Contract); err != nil {
			return d, err
		}
	}
	if d.TokenID, err = parseBig("token_id", r.TokenID); err != nil {
		return d, err
	}
	if d.Amount, err = parseBig("amount", r.Amount); err != nil {
		return d, err
	}
	if d.Rights, err = parseRights(r.Rights); err != nil {
		return d, err
	}
	return d, nil
}

func newDelegationResponse(id common.Hash, d registry.Delegation) DelegationResponse {
	resp := DelegationResponse{
		Identity: id.Hex(),
		Type:     d.Type.String(),
		From:     d.From.Hex(),
		To:       d.To.Hex(),
		Rights:   d.Rights.Hex(),
		Enabled:  d.Enabled,
	}
	if d.Type != registry.TypeAll {
		resp.Contract = d.Contract.Hex()
	}
	if d.TokenID != nil {
		resp.TokenID = d.TokenID.String()
	}
	if d.Amount != nil {
		resp.Amount = d.Amount.String()
	}
	return resp
}

func parseAddress(field, raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", field, raw)
	}
	return common.HexToAddress(raw), nil
}

func parseBig(field, raw string) (*big.Int, error) {
	if raw == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s value %q", field, raw)
	}
	return v, nil
}

func parseRights(raw string) (common.Hash, error) {
	if raw == "" {
		return registry.RightsAll, nil
	}
	b, err := hexutil.Decode(raw)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid rights tag %q: want 32 hex bytes", raw)
	}
	return common.BytesToHash(b), nil
}
