package vision

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// ErrImageDecode marks an upload that could not be decoded into a raster.
var ErrImageDecode = errors.New("image decode failed")

// LoadImage decodes an image file into a BGR Mat. The file is read as a
// byte stream and decoded from memory first, which sidesteps path-encoding
// issues in the native imread; a direct read is kept as a fallback.
// The caller owns the returned Mat and must Close it.
func LoadImage(path string) (gocv.Mat, error) {
	if data, err := os.ReadFile(path); err == nil {
		img, err := gocv.IMDecode(data, gocv.IMReadColor)
		if err == nil && !img.Empty() {
			return img, nil
		}
		if err == nil {
			img.Close()
		}
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		abs, _ := filepath.Abs(path)
		_, statErr := os.Stat(abs)
		return gocv.NewMat(), fmt.Errorf("%w: could not read image at %s (abs: %s, exists: %v)",
			ErrImageDecode, path, abs, statErr == nil)
	}
	return img, nil
}
