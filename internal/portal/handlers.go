package portal

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"acnode/internal/catalog"
	"acnode/internal/detector"
)

// ErrInvalidInput marks controller rejections caused by what the
// operator typed, as opposed to device-side failures.
var ErrInvalidInput = errors.New("invalid input")

const (
	statusSaved      = "saved"
	statusTesting    = "testing"
	statusConfigured = "configured"
	statusExhausted  = "exhausted"
	statusResetting  = "resetting"

	errSubmitNetwork  = "failed to store network credentials"
	errSubmitIdentity = "failed to configure device"
	errNoTest         = "no protocol test in progress"
	errReset          = "failed to reset device"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"st":     h.ctrl.Status(c.Request.Context()),
		"brands": catalog.Brands(),
	})
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Status(c.Request.Context()))
}

func (h *Handler) submitNetwork(c *gin.Context) {
	ssid := strings.TrimSpace(c.PostForm("ssid"))
	password := c.PostForm("password")
	if ssid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ssid is required"})
		return
	}
	if err := h.ctrl.SubmitNetwork(c.Request.Context(), ssid, password); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSubmitNetwork, "portal_submit_network_failed", err, "ssid", ssid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSaved, "ssid": ssid})
}

func (h *Handler) submitIdentity(c *gin.Context) {
	customerID := strings.TrimSpace(c.PostForm("customer_id"))
	zoneID := strings.TrimSpace(c.PostForm("zone_id"))
	brand := strings.TrimSpace(c.PostForm("brand"))
	skip := parseBool(c.PostForm("skip_testing"))

	if customerID == "" || zoneID == "" || brand == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id, zone_id and brand are required"})
		return
	}

	prompt, err := h.ctrl.SubmitIdentity(c.Request.Context(), customerID, zoneID, brand, skip)
	if err != nil {
		// Rejected input (unknown brand, invalid zone) is the operator's
		// to fix; everything else is the device's problem.
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, detector.ErrNoCandidates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSubmitIdentity, "portal_submit_identity_failed", err,
			"customer_id", customerID, "zone_id", zoneID, "brand", brand)
		return
	}
	if prompt != nil {
		c.JSON(http.StatusOK, gin.H{"status": statusTesting, "prompt": prompt})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusConfigured})
}

func (h *Handler) testPrompt(c *gin.Context) {
	st := h.ctrl.Status(c.Request.Context())
	if st.Prompt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errNoTest})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusTesting, "prompt": st.Prompt})
}

func (h *Handler) operatorResult(c *gin.Context) {
	worked := parseBool(c.PostForm("worked"))
	prompt, err := h.ctrl.OperatorResult(c.Request.Context(), worked)
	if err != nil {
		if errors.Is(err, detector.ErrExhausted) {
			c.JSON(http.StatusOK, gin.H{"status": statusExhausted, "error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSubmitIdentity, "portal_operator_result_failed", err, "worked", worked)
		return
	}
	if prompt != nil {
		c.JSON(http.StatusOK, gin.H{"status": statusTesting, "prompt": prompt})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusConfigured})
}

func (h *Handler) reset(c *gin.Context) {
	if err := h.ctrl.Reset(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errReset, "portal_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusResetting})
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
