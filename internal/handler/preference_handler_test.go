package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memorykv "pukaist/internal/kv/memory"
	"pukaist/internal/service"
)

func newPreferenceHandler() *PreferenceHandler {
	kv := memorykv.NewStore()
	return NewPreferenceHandler(
		service.NewDensityService(kv),
		service.NewPipelineService(kv),
		service.NewSpotlightService(kv),
	)
}

func TestGetDensity_Default(t *testing.T) {
	h := newPreferenceHandler()
	c, w := authedContext(t, http.MethodGet, "/preferences/density", nil)
	h.GetDensity(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "comfortable")
}

func TestSetDensity_Invalid(t *testing.T) {
	h := newPreferenceHandler()
	c, w := authedContext(t, http.MethodPut, "/preferences/density", gin.H{"density": "cozy"})
	h.SetDensity(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_DENSITY_MODE", resp.Error.Code)
}

func TestToggleDensity(t *testing.T) {
	h := newPreferenceHandler()

	c, w := authedContext(t, http.MethodPost, "/preferences/density/toggle", nil)
	h.ToggleDensity(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "compact")

	c, w = authedContext(t, http.MethodPost, "/preferences/density/toggle", nil)
	h.ToggleDensity(c)
	assert.Contains(t, w.Body.String(), "comfortable")
}

func TestUpdatePipelineConfig_IntentOffline(t *testing.T) {
	h := newPreferenceHandler()

	c, w := authedContext(t, http.MethodPatch, "/preferences/pipeline", gin.H{"llm_enabled": false})
	h.UpdatePipelineConfig(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = authedContext(t, http.MethodGet, "/preferences/pipeline/intent", nil)
	h.GetPipelineIntent(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"llm_mode":"offline"`)
}
