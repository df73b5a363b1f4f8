package api

import (
	"context"
	"log/slog"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/domain/inventory"
	"github.com/awrteam/awr/internal/domain/materials"
	"github.com/awrteam/awr/internal/domain/reports"
	"github.com/awrteam/awr/internal/domain/tasks"
	"github.com/awrteam/awr/internal/domain/teams"
	"github.com/awrteam/awr/internal/identity"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IdentityStore interface {
	GetByPhone(ctx context.Context, phone string) (*identity.User, error)
}

type MaterialStore interface {
	List(ctx context.Context) ([]materials.Material, error)
}

type TeamStore interface {
	List(ctx context.Context) ([]teams.Team, error)
	GetByID(ctx context.Context, id int64) (*teams.Team, error)
}

// Deps carries everything the handlers touch. All stores arrive as interfaces
// so the router can be exercised against in-memory implementations.
type Deps struct {
	Tokens     *identity.TokenService
	BotToken   string
	Users      IdentityStore
	Tasks      tasks.Store
	Reports    *reports.Service
	Ledger     inventory.Ledger
	Materials  MaterialStore
	Teams      TeamStore
	UploadsDir string
	Metrics    bool
}

type Server struct {
	echo *echo.Echo
	addr string
	log  *slog.Logger
	deps Deps
}

type payloadValidator struct{ v *validator.Validate }

func (pv *payloadValidator) Validate(i interface{}) error {
	if err := pv.v.Struct(i); err != nil {
		return apperrors.NewValidationError("некорректный запрос: %v", err)
	}
	return nil
}

func New(addr string, log *slog.Logger, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &payloadValidator{v: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{echo: e, addr: addr, log: log, deps: deps}
	e.HTTPErrorHandler = s.errorHandler
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})
	if s.deps.Metrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	e.POST("/auth/validate", s.handleAuthValidate)

	if s.deps.UploadsDir != "" {
		e.Static("/uploads", s.deps.UploadsDir)
	}

	auth := e.Group("", s.authRequired)

	auth.GET("/tasks", s.handleTaskList)
	auth.POST("/tasks", s.handleTaskCreate)
	auth.PUT("/tasks/:id", s.handleTaskUpdate)
	auth.DELETE("/tasks/:id", s.handleTaskDelete)
	auth.POST("/tasks/:id/status", s.handleTaskStatus)

	auth.GET("/tasks/:id/report", s.handleReportGet)
	auth.POST("/tasks/:id/report/comment", s.handleReportComment)
	auth.POST("/tasks/:id/report/materials", s.handleReportMaterials)
	auth.POST("/tasks/:id/report/photos", s.handleReportPhotos)

	auth.GET("/materials", s.handleMaterialList)
	auth.GET("/stock/teams", s.handleStockTeams)
	auth.POST("/stock/move/material", s.handleStockMove)
	auth.POST("/instruments/add", s.handleInstrumentAdd)
	auth.POST("/instruments/move", s.handleInstrumentMove)
	auth.GET("/holdings", s.handleHoldings)

	auth.GET("/export/excel", s.handleExportExcel)
}

func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() *echo.Echo { return s.echo }
