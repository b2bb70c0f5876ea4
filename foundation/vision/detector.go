package vision

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// FaceDetector finds face rectangles in full frames using a Haar cascade.
type FaceDetector struct {
	classifier gocv.CascadeClassifier
}

func NewFaceDetector(cascadeFile string) (*FaceDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadeFile) {
		classifier.Close()
		return nil, errors.Errorf("Error reading cascade file: %v", cascadeFile)
	}

	return &FaceDetector{classifier: classifier}, nil
}

func (d *FaceDetector) Detect(frame gocv.Mat) []image.Rectangle {
	return d.classifier.DetectMultiScale(frame)
}

func (d *FaceDetector) Close() error {
	return d.classifier.Close()
}
