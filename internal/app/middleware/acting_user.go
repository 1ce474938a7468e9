package middleware

import (
	"net/http"
	"strconv"

	"gestic/internal/app/apperr"
	"gestic/internal/app/dto"

	"github.com/gin-gonic/gin"
)

const (
	ActingUserHeader = "X-User-ID"
	actingUserKey    = "acting_user_id"
)

// ActingUser reads the optional X-User-ID header. The id only attributes
// changes (service history); it grants no access.
func ActingUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ActingUserHeader)
		if raw == "" {
			c.Next()
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Status:  "fail",
				Code:    apperr.CodeValidation,
				Message: ActingUserHeader + " must be a positive integer",
				Fields:  []apperr.FieldError{{Field: ActingUserHeader, Rule: "uint"}},
			})
			return
		}
		c.Set(actingUserKey, uint(id))
		c.Next()
	}
}

// ActingUserID returns the id set by ActingUser.
func ActingUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(actingUserKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
