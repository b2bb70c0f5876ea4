package camera

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Camera wraps a V4L2/DirectShow capture device and hands out BGR frames.
type Camera struct {
	device  int
	capture *gocv.VideoCapture
}

func Open(device int, width int, height int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, errors.Wrapf(err, "Can not open device %d", device)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(height))

	return &Camera{
		device:  device,
		capture: capture,
	}, nil
}

// Read grabs the next frame into img. The frame may be empty right after the
// device opens; callers should skip empty frames rather than treat them as
// errors.
func (c *Camera) Read(img *gocv.Mat) error {
	if ok := c.capture.Read(img); !ok {
		return errors.Errorf("Device %d closed", c.device)
	}
	return nil
}

func (c *Camera) Close() error {
	return c.capture.Close()
}
