package brewing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLitersToGallons(t *testing.T) {
	assert.InDelta(t, 1.32086, LitersToGallons(5), 0.00001)
	assert.Equal(t, 0.0, LitersToGallons(0))
}

func TestKgToLbs(t *testing.T) {
	assert.InDelta(t, 2.20462, KgToLbs(1), 0.00001)
	assert.InDelta(t, 3.30693, KgToLbs(1.5), 0.00001)
}
