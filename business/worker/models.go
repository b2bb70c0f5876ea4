package worker

import (
	"image"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/superfeelapi/goEmotionCam/business/emotion"
	"github.com/superfeelapi/goEmotionCam/foundation/camera"
	"github.com/superfeelapi/goEmotionCam/foundation/external/dashboard"
	"github.com/superfeelapi/goEmotionCam/foundation/pubsub"
	"github.com/superfeelapi/goEmotionCam/foundation/redis"
	"github.com/superfeelapi/goEmotionCam/foundation/vision"
)

type Settings struct {
	Config
	Logger     *zap.SugaredLogger
	Camera     *camera.Camera
	Detector   *vision.FaceDetector
	Stabilizer *emotion.Stabilizer
	Broker     *pubsub.Broker
	Redis      *redis.Redis
	Dashboard  *dashboard.Socket
}

type Config struct {
	SessionID         string
	ProfileName       string
	WindowTitle       string
	SnapshotDirectory string
}

// =====================================================================================================================

// Frame is one captured image moving through the pipeline. Whoever holds the
// Frame last closes its Mat.
type Frame struct {
	ID    uint64
	Image gocv.Mat
}

// Detection is a frame plus its best face, when one was found. Face is a
// clone of the crop so the stabilizer can mutate it freely.
type Detection struct {
	Frame
	Face    gocv.Mat
	Region  image.Rectangle
	HasFace bool
}

// Overlay is a detection with the stabilized emotion attached, ready to draw.
type Overlay struct {
	Detection
	Label      emotion.Label
	Confidence float64
}

// EmotionEvent is the payload fanned out to the publishing sinks.
type EmotionEvent struct {
	SessionID   string  `json:"session_id"`
	Profile     string  `json:"profile"`
	FrameID     uint64  `json:"frame_id"`
	Timestamp   int64   `json:"timestamp_ms"`
	Label       string  `json:"label"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
	Glyph       string  `json:"glyph"`
}
