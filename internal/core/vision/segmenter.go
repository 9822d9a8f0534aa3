package vision

import (
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// Noise filter thresholds for candidate question blocks. Contours smaller
// than this are stray marks, page numbers, or dilation artifacts.
const (
	MinBlockWidth  = 100
	MinBlockHeight = 50
)

// Dilation kernel, wider than tall so same-line glyphs and adjacent text
// lines fuse into one block before contour extraction. Tuned for ~150 DPI
// scans; higher resolutions may need a larger kernel.
const (
	dilateKernelW = 40
	dilateKernelH = 10
)

// DetectBlocks finds candidate text-block rectangles in a BGR image:
// grayscale → Otsu inverse threshold → dilation → external contours →
// bounding rects. The rects are returned unfiltered and unsorted.
func DetectBlocks(img gocv.Mat) []image.Rectangle {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(gray, &thresh, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(dilateKernelW, dilateKernelH))
	defer kernel.Close()

	dilated := gocv.NewMat()
	defer dilated.Close()
	gocv.Dilate(thresh, &dilated, kernel)

	contours := gocv.FindContours(dilated, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	rects := make([]image.Rectangle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rects = append(rects, gocv.BoundingRect(contours.At(i)))
	}
	return rects
}

// SegmentBoxes filters raw contour rects down to plausible question blocks
// and sorts them top-to-bottom. When no rect survives the size filter, one
// rect covering the full width×height image is returned instead and
// fullPage is true, so a page never yields zero questions.
func SegmentBoxes(rects []image.Rectangle, width, height int) (boxes []image.Rectangle, fullPage bool) {
	for _, r := range rects {
		if r.Dx() < MinBlockWidth || r.Dy() < MinBlockHeight {
			continue
		}
		boxes = append(boxes, r)
	}
	if len(boxes) == 0 {
		return []image.Rectangle{image.Rect(0, 0, width, height)}, true
	}
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Min.Y < boxes[j].Min.Y
	})
	return boxes, false
}
