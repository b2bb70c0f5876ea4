package vision

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

const (
	claheClipLimit = 2.0
	claheTileSize  = 8
)

// EnsureMinSize upscales img in place to min x min when either dimension is
// below min. Images already at or above the minimum are left untouched.
func EnsureMinSize(img *gocv.Mat, min int) {
	if img.Rows() >= min && img.Cols() >= min {
		return
	}
	gocv.Resize(*img, img, image.Pt(min, min), 0, 0, gocv.InterpolationLinear)
}

// EnhanceContrast applies local adaptive histogram equalization to the
// lightness channel of a BGR image, in place. The image is converted to LAB,
// CLAHE is run on L only, and the result converted back. Non-3-channel
// images are left as-is.
func EnhanceContrast(img *gocv.Mat) error {
	if img.Empty() || img.Channels() != 3 {
		return nil
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(*img, &lab, gocv.ColorBGRToLab)

	channels := gocv.Split(lab)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()
	if len(channels) != 3 {
		return errors.Errorf("Expected 3 LAB channels, got %d", len(channels))
	}

	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()

	equalized := gocv.NewMat()
	defer equalized.Close()
	clahe.Apply(channels[0], &equalized)

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge([]gocv.Mat{equalized, channels[1], channels[2]}, &merged)

	gocv.CvtColor(merged, img, gocv.ColorLabToBGR)
	return nil
}

// EncodeJPEG returns img as JPEG bytes, copied out of the native buffer.
func EncodeJPEG(img gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, errors.Wrap(err, "Can not encode image")
	}
	defer buf.Close()

	native := buf.GetBytes()
	encoded := make([]byte, len(native))
	copy(encoded, native)
	return encoded, nil
}

// Largest picks the biggest rectangle by area. The pipeline tracks a single
// face per stream, so on multi-face frames the closest (largest) one wins.
func Largest(rects []image.Rectangle) (image.Rectangle, bool) {
	if len(rects) == 0 {
		return image.Rectangle{}, false
	}

	largest := rects[0]
	for _, r := range rects[1:] {
		if area(r) > area(largest) {
			largest = r
		}
	}
	return largest, true
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
