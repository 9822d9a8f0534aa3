package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentBoxesFiltersSmallRects(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 0, 99, 200),    // too narrow
		image.Rect(0, 300, 500, 349), // too short
		image.Rect(10, 400, 400, 520),
	}

	boxes, fullPage := SegmentBoxes(rects, 800, 1200)

	assert.False(t, fullPage)
	assert.Len(t, boxes, 1)
	assert.Equal(t, image.Rect(10, 400, 400, 520), boxes[0])
	for _, b := range boxes {
		assert.GreaterOrEqual(t, b.Dx(), MinBlockWidth)
		assert.GreaterOrEqual(t, b.Dy(), MinBlockHeight)
	}
}

func TestSegmentBoxesSortsTopToBottom(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 700, 300, 800),
		image.Rect(0, 100, 300, 200),
		image.Rect(0, 400, 300, 500),
	}

	boxes, fullPage := SegmentBoxes(rects, 800, 1200)

	assert.False(t, fullPage)
	assert.Len(t, boxes, 3)
	for i := 1; i < len(boxes); i++ {
		assert.GreaterOrEqual(t, boxes[i].Min.Y, boxes[i-1].Min.Y)
	}
}

func TestSegmentBoxesFullPageFallback(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 0, 50, 40), // noise only
	}

	boxes, fullPage := SegmentBoxes(rects, 800, 1200)

	assert.True(t, fullPage)
	assert.Len(t, boxes, 1)
	assert.Equal(t, image.Rect(0, 0, 800, 1200), boxes[0])
}

func TestSegmentBoxesEmptyInput(t *testing.T) {
	boxes, fullPage := SegmentBoxes(nil, 640, 480)

	assert.True(t, fullPage)
	assert.Len(t, boxes, 1)
	assert.Equal(t, image.Rect(0, 0, 640, 480), boxes[0])
}

func TestSegmentBoxesExactThreshold(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(0, 0, MinBlockWidth, MinBlockHeight),
	}

	boxes, fullPage := SegmentBoxes(rects, 800, 1200)

	assert.False(t, fullPage)
	assert.Len(t, boxes, 1)
}
