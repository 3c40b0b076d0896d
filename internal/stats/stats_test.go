package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	data := []float64{10, 20, 30, 40}

	assert.Equal(t, 10.0, Percentile(data, 0))
	assert.Equal(t, 40.0, Percentile(data, 1))
	assert.InDelta(t, 25.0, Percentile(data, 0.5), 1e-9)
	// index 0.25*(4-1) = 0.75, between 10 and 20
	assert.InDelta(t, 17.5, Percentile(data, 0.25), 1e-9)
}

func TestPercentileBoundaryFraction(t *testing.T) {
	// Four marks among forty samples: the 10th percentile must land
	// strictly between the marks and the rest, not on a mark.
	data := make([]float64, 40)
	for i := range data {
		data[i] = 240
	}
	for i := 0; i < 4; i++ {
		data[i] = 15
	}
	p10 := Percentile(data, 0.10)
	assert.Greater(t, p10, 15.0)
	assert.Less(t, p10, 240.0)
}

func TestPercentileDegenerate(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 0.5)))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 0.9))
}
