package worker

import (
	"github.com/superfeelapi/goEmotionCam/foundation/vision"
)

func (w *Worker) faceDetectOperation() {
	w.logger.Infow("worker: faceDetectOperation: G started")
	defer w.logger.Infow("worker: faceDetectOperation: G completed")

	w.logger.Infow("worker: faceDetectOperation: G listening")
	for {
		select {
		case frame := <-w.frameCh:
			detection := Detection{Frame: frame}

			rects := w.detector.Detect(frame.Image)
			if rect, found := vision.Largest(rects); found {
				crop := frame.Image.Region(rect)
				detection.Face = crop.Clone()
				crop.Close()
				detection.Region = rect
				detection.HasFace = true
			}

			select {
			case w.detectCh <- detection:

			case <-w.shut:
				detection.Image.Close()
				if detection.HasFace {
					detection.Face.Close()
				}
				w.logger.Infow("worker: faceDetectOperation: received shut signal")
				return
			}

		case <-w.shut:
			w.logger.Infow("worker: faceDetectOperation: received shut signal")
			return
		}
	}
}
