package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 1.23, RoundFloat(1.2345, 2))
	assert.Equal(t, 1.24, RoundFloat(1.236, 2))
	assert.Equal(t, -1.23, RoundFloat(-1.2349, 2))
	assert.Equal(t, 100.0, RoundFloat(99.999, 1))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "10", FormatQuantity(10))
	assert.Equal(t, "0.5", FormatQuantity(0.5))
	assert.Equal(t, "12.345", FormatQuantity(12.345))
}
