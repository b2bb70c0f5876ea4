package worker

import (
	"fmt"
	"image"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/superfeelapi/goEmotionCam/business/emotion"
)

const (
	keyEscape   = 27
	keyQuit     = 'q'
	keySnapshot = 's'
)

func (w *Worker) overlayOperation() {
	w.logger.Infow("worker: overlayOperation: G started")
	defer w.logger.Infow("worker: overlayOperation: G completed")

	window := gocv.NewWindow(w.config.WindowTitle)
	defer window.Close()

	w.logger.Infow("worker: overlayOperation: G listening")
	for {
		select {
		case overlay := <-w.overlayCh:
			if overlay.HasFace {
				drawOverlay(&overlay)
			}

			window.IMShow(overlay.Image)

			switch key := window.WaitKey(1); key {
			case keyEscape, keyQuit:
				overlay.Image.Close()
				w.logger.Infow("worker: overlayOperation: window close requested")
				w.Shutdown(nil)
				return

			case keySnapshot:
				w.saveSnapshot(overlay)
			}

			overlay.Image.Close()

		case <-w.shut:
			w.logger.Infow("worker: overlayOperation: received shut signal")
			return
		}
	}
}

// =====================================================================================================================

// drawOverlay draws the face rectangle and description text onto the frame in
// the label's color. Text sits above the face unless the face touches the top
// edge.
func drawOverlay(overlay *Overlay) {
	c := emotion.Color(overlay.Label)

	gocv.Rectangle(&overlay.Image, overlay.Region, c, 2)

	text := emotion.Describe(overlay.Label, overlay.Confidence)
	origin := image.Pt(overlay.Region.Min.X, overlay.Region.Min.Y-10)
	if origin.Y < 20 {
		origin.Y = overlay.Region.Max.Y + 25
	}
	gocv.PutText(&overlay.Image, text, origin, gocv.FontHersheySimplex, 0.6, c, 2)
}

func (w *Worker) saveSnapshot(overlay Overlay) {
	name := fmt.Sprintf("%s-%d.jpg", w.config.SessionID, overlay.ID)
	path := filepath.Join(w.config.SnapshotDirectory, name)

	if ok := gocv.IMWrite(path, overlay.Image); !ok {
		w.logger.Errorw("worker: overlayOperation: snapshot", "path", path)
		return
	}
	w.logger.Infow("worker: overlayOperation: snapshot saved", "path", path)
}
