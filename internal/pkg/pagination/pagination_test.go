package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	pages, showing := Window(45, 1, 20)
	assert.Equal(t, 3, pages)
	assert.Equal(t, "1-20 of 45", showing)

	pages, showing = Window(45, 3, 20)
	assert.Equal(t, 3, pages)
	assert.Equal(t, "41-45 of 45", showing)

	pages, showing = Window(0, 1, 20)
	assert.Equal(t, 0, pages)
	assert.Equal(t, "0 of 0", showing)

	_, showing = Window(5, 4, 20)
	assert.Equal(t, "0 of 5", showing)
}

func TestBounds(t *testing.T) {
	start, end := Bounds(45, 3, 20)
	assert.Equal(t, 40, start)
	assert.Equal(t, 45, end)

	start, end = Bounds(10, 5, 20)
	assert.Equal(t, 10, start)
	assert.Equal(t, 10, end)

	start, end = Bounds(10, 1, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
	assert.Equal(t, 0, Offset(0, 20))
}
