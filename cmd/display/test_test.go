package display

import (
	"testing"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/displays"
	"github.com/stretchr/testify/assert"
)

func TestShowBannerAndStatus(t *testing.T) {
	// GIVEN
	display := displays.NewLogDisplay(configuration.DisplayConfig{Columns: 16, Rows: 2})

	// WHEN
	err := showBanner(display, "Light-Servo Ctrl")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{"Light-Servo Ctrl", "                "}, display.Lines())

	// WHEN
	err = showStatus(display, 7, 180)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{"Light: 7        ", "Servo: 180 deg  "}, display.Lines())
}
