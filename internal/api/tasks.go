package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/awrteam/awr/internal/access"
	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/domain/tasks"
	"github.com/awrteam/awr/internal/identity"
	"github.com/labstack/echo/v4"
)

type taskDTO struct {
	ID        int64        `json:"id"`
	Address   string       `json:"address"`
	TZ        string       `json:"tz"`
	Access    string       `json:"access"`
	Note      string       `json:"note"`
	TeamID    *int64       `json:"team_id"`
	Status    tasks.Status `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

func toTaskDTO(t tasks.Task) taskDTO {
	return taskDTO{
		ID: t.ID, Address: t.Address, TZ: t.TZ, Access: t.Access,
		Note: t.Note, TeamID: t.TeamID, Status: t.Status, CreatedAt: t.CreatedAt,
	}
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrNotFound
	}
	return id, nil
}

// handleTaskList filters by status, address substring and team. A brigade
// caller is always pinned to their own team, whatever the query says.
func (s *Server) handleTaskList(c echo.Context) error {
	u := currentUser(c)

	var f tasks.Filter
	if v := c.QueryParam("status"); v != "" {
		st := tasks.Status(v)
		f.Status = &st
	}
	f.Address = c.QueryParam("address")
	if v := c.QueryParam("team"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("некорректный номер бригады")
		}
		f.TeamID = &id
	}
	if u.Role == identity.RoleBrigade {
		f.TeamID = u.TeamID
	}

	list, err := s.deps.Tasks.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	out := make([]taskDTO, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskDTO(t))
	}
	return c.JSON(http.StatusOK, out)
}

type taskPayload struct {
	Address string `json:"address" validate:"required"`
	TZ      string `json:"tz"`
	Access  string `json:"access"`
	Note    string `json:"note"`
	TeamID  *int64 `json:"team_id"`
	Status  string `json:"status"`
}

func (s *Server) handleTaskCreate(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpTaskCreate) {
		return apperrors.ErrForbidden
	}

	var req taskPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := s.deps.Tasks.Create(c.Request().Context(), tasks.Draft{
		Address: req.Address, TZ: req.TZ, Access: req.Access, Note: req.Note, TeamID: req.TeamID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"id": id})
}

func (s *Server) handleTaskUpdate(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpTaskEdit) {
		return apperrors.ErrForbidden
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req taskPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st := tasks.Status(req.Status)
	if !tasks.ValidStatus(st) {
		return apperrors.NewValidationError("некорректный статус")
	}

	return s.deps.Tasks.Update(c.Request().Context(), id, tasks.Draft{
		Address: req.Address, TZ: req.TZ, Access: req.Access, Note: req.Note,
		TeamID: req.TeamID, Status: st,
	})
}

func (s *Server) handleTaskDelete(c echo.Context) error {
	u := currentUser(c)
	if !access.Can(u.Role, access.OpTaskDelete) {
		return apperrors.ErrForbidden
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if err := s.deps.Tasks.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

// handleTaskStatus is the constrained transition endpoint: admins set any
// status, a brigade only «В работе» and only on their own task.
func (s *Server) handleTaskStatus(c echo.Context) error {
	u := currentUser(c)
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req statusPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st := tasks.Status(req.Status)

	task, err := s.deps.Tasks.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !tasks.CanSetStatus(u.Role, st) {
		return apperrors.ErrForbidden
	}
	if u.Role == identity.RoleBrigade {
		if u.TeamID == nil || task.TeamID == nil || *u.TeamID != *task.TeamID {
			return apperrors.ErrForbidden
		}
	}

	if err := s.deps.Tasks.SetStatus(c.Request().Context(), id, st); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
