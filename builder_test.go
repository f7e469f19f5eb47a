package chord_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/chord"
	"github.com/dudk/chord/mock"
)

func TestSourceBuilder(t *testing.T) {
	input := &mock.Source{
		Rate:   1000,
		Values: mock.Repeat(0.5, 100),
	}

	source := chord.NewSourceBuilder(input).
		Duration(4 * time.Millisecond).
		Delay(2 * time.Millisecond).
		Amplify(2).
		Buffered(8).
		Build()

	assert.Equal(t, []float64{0, 1, 1, 1}, drain(source))

	total, ok := source.TotalDuration()
	assert.True(t, ok)
	assert.Equal(t, 6*time.Millisecond, total)
}
