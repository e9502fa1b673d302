package middleware

// identity.go provides the rate-limit key identity. Authenticated
// requests are bucketed per user so one farmer cannot starve another
// behind the same NAT; everything else falls back to the client IP.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// requestIdentity returns a per-user identity when JWTAuth has run, and
// the real IP otherwise.
func requestIdentity(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		return fmt.Sprintf("u:%v", v)
	}
	return "ip:" + c.RealIP()
}
