package api

import (
	"strings"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/identity"
	"github.com/labstack/echo/v4"
)

const ctxUserKey = "user"

func (s *Server) authRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			return apperrors.ErrUnauthorized
		}
		claims, err := s.deps.Tokens.Parse(token)
		if err != nil {
			return apperrors.ErrUnauthorized
		}
		c.Set(ctxUserKey, claims)
		return next(c)
	}
}

func currentUser(c echo.Context) *identity.Claims {
	claims, _ := c.Get(ctxUserKey).(*identity.Claims)
	return claims
}
