package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatChips(t *testing.T) {
	assert.Equal(t, "0", FormatChips(0))
	assert.Equal(t, "999", FormatChips(999))
	assert.Equal(t, "1,000", FormatChips(1000))
	assert.Equal(t, "1,000,000", FormatChips(1000000))
	assert.Equal(t, "-1,234", FormatChips(-1234))
}

func TestFormatCooldown(t *testing.T) {
	assert.Equal(t, "14h 0m", FormatCooldown(14*time.Hour))
	assert.Equal(t, "0h 45m", FormatCooldown(45*time.Minute))
	assert.Equal(t, "23h 59m", FormatCooldown(23*time.Hour+59*time.Minute+20*time.Second))
}
