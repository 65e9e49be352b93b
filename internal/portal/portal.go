// Package portal serves the on-device provisioning UI: a small web
// app reachable over the setup hotspot (and later over the customer
// network) for entering credentials, identity and the AC brand, and
// for answering protocol-test prompts.
package portal

import (
	"context"

	"github.com/gin-gonic/gin"

	"acnode/internal/journal"
	"acnode/internal/logger"
	"acnode/internal/models"
)

// Prompt mirrors the detector's current candidate for the UI.
type Prompt struct {
	Brand    string `json:"brand"`
	Protocol string `json:"protocol"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
}

// Status is the device snapshot rendered on every page and pushed over
// the websocket.
type Status struct {
	State     string          `json:"state"`
	DeviceID  string          `json:"device_id"`
	Firmware  string          `json:"firmware"`
	Config    models.Config   `json:"config"`
	ACState   models.ACState  `json:"ac_state"`
	Connected bool            `json:"mqtt_connected"`
	Prompt    *Prompt         `json:"prompt,omitempty"`
	Events    []journal.Event `json:"events,omitempty"`
}

// Controller is the device side of the portal: the orchestrator
// implements it and serializes everything onto its control loop.
type Controller interface {
	Status(ctx context.Context) Status
	// SubmitNetwork stores Wi-Fi credentials and kicks off joining the
	// customer network.
	SubmitNetwork(ctx context.Context, ssid, password string) error
	// SubmitIdentity validates and stores customer, zone and brand. A
	// non-nil prompt means a protocol test awaits operator feedback; a
	// nil prompt means setup finished without testing.
	SubmitIdentity(ctx context.Context, customerID, zoneID, brand string, skipTesting bool) (*Prompt, error)
	// OperatorResult answers the pending protocol test. A non-nil
	// prompt means the next candidate was fired.
	OperatorResult(ctx context.Context, worked bool) (*Prompt, error)
	// Reset wipes configuration and reboots into setup mode.
	Reset(ctx context.Context) error
}

// Handler wires the portal routes to the controller and logging.
type Handler struct {
	ctrl Controller
	log  *logger.Logger
}

func NewHandler(ctrl Controller, log *logger.Logger) *Handler {
	return &Handler{ctrl: ctrl, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(pages)

	router.GET("/", h.index)
	router.GET("/status", h.status)

	router.POST("/submit", h.submitNetwork)
	router.POST("/config", h.submitIdentity)
	router.GET("/test", h.testPrompt)
	router.POST("/result", h.operatorResult)
	router.POST("/reset", h.reset)

	// Live status stream for the setup page, same port.
	router.GET("/ws", h.wsConnect)

	return router
}
