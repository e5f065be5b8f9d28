package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bobby-s-dev/weather-lookup/internal/credential"
	"github.com/bobby-s-dev/weather-lookup/internal/geo"
	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/bobby-s-dev/weather-lookup/internal/render"
	"github.com/bobby-s-dev/weather-lookup/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

var startTime = time.Now()

type CredentialStore interface {
	Get() string
	Save(ctx context.Context, value string) error
	Masked() string
}

type Handler struct {
	session         *services.Session
	creds           CredentialStore
	feed            *services.Feed
	defaultLocation string
	logger          *zap.Logger
}

func NewHandler(session *services.Session, creds CredentialStore, feed *services.Feed, defaultLocation string, logger *zap.Logger) *Handler {
	return &Handler{
		session:         session,
		creds:           creds,
		feed:            feed,
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

type weatherResponse struct {
	Label   string        `json:"label,omitempty"`
	Loading bool          `json:"loading"`
	Status  models.Status `json:"status"`
	View    *render.View  `json:"view,omitempty"`
	Theme   render.Theme  `json:"theme"`
}

type saveCredentialRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// GetWeather handles GET /api/v1/weather?location=
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location parameter is required",
		})
	}

	status := h.session.FetchWeather(c.UserContext(), location)
	return h.respond(c, status, location)
}

// GetWeatherHere handles GET /api/v1/weather/here?lat=&lon=
// Missing or unusable coordinates fall back to the default location.
func (h *Handler) GetWeatherHere(c *fiber.Ctx) error {
	locator := geo.LocatorFunc(func(ctx context.Context) (geo.Coordinate, error) {
		lat, lon := c.Query("lat"), c.Query("lon")
		if lat == "" || lon == "" {
			return geo.Coordinate{}, geo.ErrUnavailable
		}
		return geo.ParseCoordinate(lat, lon)
	})

	query, label := geo.StartupQuery(c.UserContext(), locator, h.defaultLocation, h.logger)
	status := h.session.FetchWeather(c.UserContext(), query)
	return h.respond(c, status, label)
}

// GetStatus handles GET /api/v1/weather/status
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	status := h.session.Status()
	query, _ := h.session.LastQuery()
	return c.JSON(h.buildResponse(status, query))
}

// GetNotifications handles GET /api/v1/notifications
func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"notifications": h.feed.Recent(),
	})
}

// GetCredential handles GET /api/v1/credential. The key itself is never returned.
func (h *Handler) GetCredential(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"configured": h.creds.Get() != "",
		"masked":     h.creds.Masked(),
	})
}

// SaveCredential handles PUT /api/v1/credential
func (h *Handler) SaveCredential(c *fiber.Ctx) error {
	var req saveCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "api_key is required")
	}

	if err := h.creds.Save(c.UserContext(), req.APIKey); err != nil {
		if errors.Is(err, credential.ErrEmptyCredential) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("Failed to save credential", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save API key")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"masked":  h.creds.Masked(),
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
		"stats":     h.session.GetStats(),
	})
}

func (h *Handler) respond(c *fiber.Ctx, status models.Status, label string) error {
	code := fiber.StatusOK
	if status.Phase == models.PhaseFailed {
		code = statusCode(status.Err.Kind)
	}
	return c.Status(code).JSON(h.buildResponse(status, label))
}

func (h *Handler) buildResponse(status models.Status, label string) weatherResponse {
	resp := weatherResponse{
		Label:   label,
		Loading: status.Phase == models.PhaseLoading,
		Status:  status,
		Theme:   render.ThemeFor(""),
	}
	if status.Snapshot != nil {
		view := render.NewView(status.Snapshot, nil)
		resp.View = &view
		resp.Theme = view.Theme
	}
	return resp
}

func statusCode(kind models.ErrorKind) int {
	switch kind {
	case models.MissingCredential:
		return fiber.StatusBadRequest
	case models.InvalidCredential:
		return fiber.StatusUnauthorized
	case models.LocationNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}
