package worker

import (
	"sync"

	"go.uber.org/zap"

	"github.com/superfeelapi/goEmotionCam/business/emotion"
	"github.com/superfeelapi/goEmotionCam/foundation/camera"
	"github.com/superfeelapi/goEmotionCam/foundation/external/dashboard"
	"github.com/superfeelapi/goEmotionCam/foundation/pubsub"
	"github.com/superfeelapi/goEmotionCam/foundation/redis"
	"github.com/superfeelapi/goEmotionCam/foundation/state"
	"github.com/superfeelapi/goEmotionCam/foundation/vision"
)

type Worker struct {
	config Config
	state  *state.State
	logger *zap.SugaredLogger

	camera     *camera.Camera
	detector   *vision.FaceDetector
	stabilizer *emotion.Stabilizer
	broker     *pubsub.Broker
	redis      *redis.Redis
	dashboard  *dashboard.Socket

	wg       sync.WaitGroup
	shutOnce sync.Once
	shut     chan struct{}
	error    chan error

	frameCh   chan Frame
	detectCh  chan Detection
	overlayCh chan Overlay
}

func Run(s Settings) <-chan error {
	w := &Worker{
		config:     s.Config,
		state:      state.NewState(),
		logger:     s.Logger,
		camera:     s.Camera,
		detector:   s.Detector,
		stabilizer: s.Stabilizer,
		broker:     s.Broker,
		redis:      s.Redis,
		dashboard:  s.Dashboard,
		shut:       make(chan struct{}),
		error:      make(chan error, 1),
		frameCh:    make(chan Frame, 2),
		detectCh:   make(chan Detection, 2),
		overlayCh:  make(chan Overlay, 2),
	}

	operations := []func(){
		w.captureOperation,
		w.faceDetectOperation,
		w.emotionOperation,
		w.overlayOperation,
		w.publishOperation,
	}

	g := len(operations)
	w.wg.Add(g)

	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return w.error
}

// Shutdown terminates every operation goroutine and reports err (which may be
// nil for a user-requested quit) on the worker's error channel. Safe to call
// from any operation; only the first call wins.
func (w *Worker) Shutdown(err error) {
	w.shutOnce.Do(func() {
		w.logger.Infow("worker: shutdown: started")

		if err != nil {
			w.logger.Errorw("worker: shutdown", "ERROR", err)
		}

		w.logger.Infow("worker: shutdown: terminate goroutines")
		close(w.shut)

		go func() {
			w.wg.Wait()
			w.drain()
			w.error <- err
			w.logger.Infow("worker: shutdown: completed")
		}()
	})
}

// drain closes any Mats stranded in the pipeline channels once all
// operations have stopped.
func (w *Worker) drain() {
	for {
		select {
		case f := <-w.frameCh:
			f.Image.Close()
		case d := <-w.detectCh:
			d.Image.Close()
			if d.HasFace {
				d.Face.Close()
			}
		case o := <-w.overlayCh:
			o.Image.Close()
		default:
			return
		}
	}
}
