package auth

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// CallerHeader carries the authenticated caller's vault address. The upstream
// gateway verifies the caller's signature and sets this header; this service
// trusts it and only enforces that mutations name the caller as the vault.
const CallerHeader = "X-Caller-Address"

const callerContextKey = "callerAddress"

// ErrNoCallerAddress is returned when the caller address is missing from the
// request context.
var ErrNoCallerAddress = errors.New("no caller address in request context")

// RequireCallerAddress rejects requests without a well-formed caller address
// header and stashes the parsed address in the gin context.
func RequireCallerAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CallerHeader)
		if !common.IsHexAddress(raw) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or malformed " + CallerHeader + " header",
			})
			return
		}
		c.Set(callerContextKey, common.HexToAddress(raw))
		c.Next()
	}
}

// CallerAddress returns the authenticated caller set by RequireCallerAddress.
func CallerAddress(c *gin.Context) (common.Address, error) {
	v, ok := c.Get(callerContextKey)
	if !ok {
		return common.Address{}, ErrNoCallerAddress
	}
	addr, ok := v.(common.Address)
	if !ok {
		return common.Address{}, ErrNoCallerAddress
	}
	return addr, nil
}
