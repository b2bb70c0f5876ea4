package worker

import (
	"gocv.io/x/gocv"
)

func (w *Worker) captureOperation() {
	w.logger.Infow("worker: captureOperation: G started")
	defer w.logger.Infow("worker: captureOperation: G completed")

	var frameID uint64

	w.logger.Infow("worker: captureOperation: G streaming")
	for {
		select {
		case <-w.shut:
			w.logger.Infow("worker: captureOperation: received shut signal")
			return
		default:
		}

		img := gocv.NewMat()
		if err := w.camera.Read(&img); err != nil {
			img.Close()
			w.Shutdown(err)
			return
		}
		if img.Empty() {
			img.Close()
			continue
		}

		frameID++

		select {
		case w.frameCh <- Frame{ID: frameID, Image: img}:

		case <-w.shut:
			img.Close()
			w.logger.Infow("worker: captureOperation: received shut signal")
			return

		default:
			// Pipeline is still busy with an earlier frame; a live overlay
			// wants the newest frame, not a backlog.
			img.Close()
		}
	}
}
