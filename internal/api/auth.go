package api

import (
	"net/http"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/identity"
	"github.com/labstack/echo/v4"
)

type validateRequest struct {
	Phone    string `json:"phone" validate:"required"`
	InitData string `json:"init_data"`
}

type validateResponse struct {
	Token  string        `json:"token"`
	Role   identity.Role `json:"role"`
	TeamID *int64        `json:"team_id"`
	Name   string        `json:"name"`
}

// handleAuthValidate maps a phone number to a role and issues the bearer
// token. When the WebApp passes initData along, its signature is checked
// against the bot token.
func (s *Server) handleAuthValidate(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("phone required")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.InitData != "" && s.deps.BotToken != "" && !identity.VerifyInitData(req.InitData, s.deps.BotToken) {
		return apperrors.ErrUnauthorized
	}

	u, err := s.deps.Users.GetByPhone(c.Request().Context(), req.Phone)
	if err != nil {
		return err
	}
	if u == nil {
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "Пользователь не найден. Обратитесь к администратору.",
		})
	}

	token, err := s.deps.Tokens.Issue(u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateResponse{Token: token, Role: u.Role, TeamID: u.TeamID, Name: u.Name})
}
