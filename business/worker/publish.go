package worker

import (
	"github.com/superfeelapi/goEmotionCam/foundation/pubsub"
	"github.com/superfeelapi/goEmotionCam/foundation/state"
)

func (w *Worker) publishOperation() {
	w.logger.Infow("worker: publishOperation: G started")
	defer w.logger.Infow("worker: publishOperation: G completed")

	subscriber := pubsub.NewSubscriber(16)
	w.broker.Subscribe(emotionTopic, subscriber)

	eventCh := subscriber.GetChannel()

	w.logger.Infow("worker: publishOperation: G listening")
	for {
		select {
		case payload := <-eventCh:
			event, ok := payload.(EmotionEvent)
			if !ok {
				w.logger.Errorw("worker: publishOperation: unexpected payload", "payload", payload)
				continue
			}

			if w.redis != nil && w.state.Get(state.Redis) {
				if err := w.redis.Produce(event); err != nil {
					w.state.Set(state.Redis, false)
					w.logger.Errorw("worker: publishOperation: redis", "ERROR", err)
				}
			}

			if w.dashboard != nil && w.state.Get(state.Dashboard) {
				if err := w.dashboard.Send(event); err != nil {
					w.state.Set(state.Dashboard, false)
					w.logger.Errorw("worker: publishOperation: dashboard", "ERROR", err)
				}
			}

		case <-w.shut:
			w.logger.Infow("worker: publishOperation: received shut signal")
			return
		}
	}
}
