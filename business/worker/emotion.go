package worker

import (
	"time"

	"github.com/superfeelapi/goEmotionCam/business/emotion"
)

const emotionTopic = "emotion"

func (w *Worker) emotionOperation() {
	w.logger.Infow("worker: emotionOperation: G started")
	defer w.logger.Infow("worker: emotionOperation: G completed")

	w.logger.Infow("worker: emotionOperation: G listening")
	for {
		select {
		case detection := <-w.detectCh:
			overlay := Overlay{
				Detection: detection,
				Label:     emotion.Unknown,
			}

			if detection.HasFace {
				label, confidence := w.stabilizer.Classify(detection.Face)
				detection.Face.Close()

				overlay.Label = label
				overlay.Confidence = confidence

				event := EmotionEvent{
					SessionID:   w.config.SessionID,
					Profile:     w.config.ProfileName,
					FrameID:     detection.ID,
					Timestamp:   time.Now().UnixMilli(),
					Label:       string(label),
					Confidence:  confidence,
					Description: emotion.Describe(label, confidence),
					Glyph:       emotion.Glyph(label),
				}
				if err := w.broker.Publish(emotionTopic, event); err != nil {
					w.logger.Errorw("worker: emotionOperation: publish", "ERROR", err)
				}
			}

			select {
			case w.overlayCh <- overlay:

			case <-w.shut:
				overlay.Image.Close()
				w.logger.Infow("worker: emotionOperation: received shut signal")
				return
			}

		case <-w.shut:
			w.logger.Infow("worker: emotionOperation: received shut signal")
			return
		}
	}
}
