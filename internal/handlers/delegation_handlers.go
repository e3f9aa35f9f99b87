package handlers

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/vaultkit/delegate-registry/internal/auth"
	"github.com/vaultkit/delegate-registry/internal/registry"
)

// DelegationHandler handles delegation grant, revoke, read and enumeration.
type DelegationHandler struct {
	common *CommonServices
}

// NewDelegationHandler creates a new DelegationHandler instance
func NewDelegationHandler(common *CommonServices) *DelegationHandler {
	return &DelegationHandler{common: common}
}

// SetDelegation grants or revokes a delegation for the authenticated vault.
// The caller must be the vault named in the request's from field.
func (h *DelegationHandler) SetDelegation(c *gin.Context) {
	var req SetDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	d, err := req.toDelegation()
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	caller, err := auth.CallerAddress(c)
	if err != nil {
		sendError(c, http.StatusUnauthorized, "Missing caller identity", err)
		return
	}
	if caller != d.From {
		sendError(c, http.StatusForbidden, "Caller is not the delegating vault", nil)
		return
	}

	var id common.Hash
	if req.Enable {
		id, err = h.common.delegations.Grant(c.Request.Context(), d)
	} else {
		id, err = h.common.delegations.Revoke(c.Request.Context(), d)
	}
	if err != nil {
		handleRegistryError(c, err)
		return
	}

	d.Enabled = req.Enable
	sendSuccess(c, http.StatusOK, newDelegationResponse(id, d))
}

// GetDelegation returns the record stored under an identity hash, whether
// enabled or revoked. Identities that were never stored return 404.
func (h *DelegationHandler) GetDelegation(c *gin.Context) {
	raw := c.Param("identity")
	if len(raw) != 2+2*common.HashLength || raw[:2] != "0x" {
		sendError(c, http.StatusBadRequest, "Invalid identity format", nil)
		return
	}
	id := common.HexToHash(raw)

	rec, err := h.common.delegations.GetDelegation(c.Request.Context(), id)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read delegation", err)
		return
	}
	if rec.Type == registry.TypeNone {
		sendError(c, http.StatusNotFound, "Delegation not found", nil)
		return
	}
	sendSuccess(c, http.StatusOK, newDelegationResponse(id, rec))
}

// GetOutgoingDelegations lists every enabled delegation granted by a vault.
func (h *DelegationHandler) GetOutgoingDelegations(c *gin.Context) {
	vault := c.Param("vault")
	if !common.IsHexAddress(vault) {
		sendError(c, http.StatusBadRequest, "Invalid vault address", nil)
		return
	}

	recs, err := h.common.delegations.GetOutgoingDelegations(c.Request.Context(), common.HexToAddress(vault))
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list delegations", err)
		return
	}

	items := make([]DelegationResponse, 0, len(recs))
	for _, rec := range recs {
		items = append(items, newDelegationResponse(rec.Identity(), rec))
	}
	sendList(c, items)
}

// CheckDelegation resolves an authorization query from query parameters:
// type, to, from, contract, token_id and rights. Absence of authorization is a
// normal valid=false response, never an error status.
func (h *DelegationHandler) CheckDelegation(c *gin.Context) {
	t, err := registry.ParseDelegationType(c.Query("type"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	to, err := parseAddress("to", c.Query("to"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	from, err := parseAddress("from", c.Query("from"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	var contract common.Address
	if raw := c.Query("contract"); raw != "" {
		if contract, err = parseAddress("contract", raw); err != nil {
			sendError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
	}
	tokenID, err := parseBig("token_id", c.Query("token_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	rights, err := parseRights(c.Query("rights"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	ok, err := h.common.delegations.CheckDelegate(c.Request.Context(), t, to, from, contract, tokenID, rights)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to resolve check", err)
		return
	}
	sendSuccess(c, http.StatusOK, CheckResponse{Valid: ok})
}

// handleRegistryError maps validation failures to 400 and everything else to 500.
func handleRegistryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry.ErrInvalidDelegationType),
		errors.Is(err, registry.ErrSelfDelegation),
		errors.Is(err, registry.ErrInvalidScope),
		errors.Is(err, registry.ErrTokenIDTooLarge):
		sendError(c, http.StatusBadRequest, err.Error(), err)
	default:
		sendError(c, http.StatusInternalServerError, "Failed to update delegation", err)
	}
}
