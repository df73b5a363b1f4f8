package api

import (
	"net/http"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/domain/reports"
	"github.com/labstack/echo/v4"
)

type reportDTO struct {
	TaskID        int64                  `json:"task_id"`
	Comment       string                 `json:"comment"`
	Materials     []reports.MaterialLine `json:"materials"`
	Photos        []string               `json:"photos"`
	CommentDone   bool                   `json:"part_comment_done"`
	PhotosDone    bool                   `json:"part_photos_done"`
	MaterialsDone bool                   `json:"part_materials_done"`
}

func (s *Server) handleReportGet(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	rep, err := s.deps.Reports.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportDTO{
		TaskID: rep.TaskID, Comment: rep.Comment,
		Materials: rep.Materials, Photos: rep.Photos,
		CommentDone: rep.CommentDone, PhotosDone: rep.PhotosDone, MaterialsDone: rep.MaterialsDone,
	})
}

type commentPayload struct {
	Comment string `json:"comment"`
}

func (s *Server) handleReportComment(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req commentPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if err := s.deps.Reports.SubmitComment(c.Request().Context(), id, req.Comment); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

type materialsPayload struct {
	// pointer so an absent list is told apart from an empty one
	Items *[]reports.MaterialLine `json:"items"`
}

func (s *Server) handleReportMaterials(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req materialsPayload
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("некорректный запрос")
	}
	if req.Items == nil {
		return apperrors.NewValidationError("items required")
	}
	if err := s.deps.Reports.SubmitMaterials(c.Request().Context(), id, *req.Items); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleReportPhotos(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("ожидается multipart-форма с файлами")
	}
	headers := form.File["photos"]

	photos := make([]reports.Photo, 0, len(headers))
	opened := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return err
		}
		opened = append(opened, f)
		photos = append(photos, reports.Photo{Name: h.Filename, Data: f})
	}

	refs, err := s.deps.Reports.SubmitPhotos(c.Request().Context(), id, photos)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "files": refs})
}
