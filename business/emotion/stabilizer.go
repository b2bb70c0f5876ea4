package emotion

import (
	"math"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/superfeelapi/goEmotionCam/foundation/classifier"
	"github.com/superfeelapi/goEmotionCam/foundation/vision"
)

const (
	minFaceSize = 96

	defaultSmoothWindow = 2

	// A smoothed neutral below this confidence is weak enough to be
	// second-guessed against the other labels.
	neutralConfidenceGate = 0.6

	// Raw 0-100 score a non-neutral label must exceed to override a weak
	// neutral.
	overrideScoreGate = 20.0
)

// Classifier is the external emotion model: given a JPEG-encoded face crop
// and a detector backend it returns per-label scores on the 0-100 scale.
type Classifier interface {
	Analyze(img []byte, backend string) (map[string]float64, error)
}

type Config struct {
	SmoothWindow int
	Weights      map[Label]float64
}

// Stabilizer wraps the external classifier and smooths its noisy per-frame
// output. It owns a bounded history of recent dominant labels; confine each
// instance to a single stream, one call per captured frame. Not safe for
// concurrent use.
type Stabilizer struct {
	classifier Classifier
	logger     *zap.SugaredLogger

	window   int
	weights  map[Label]float64
	backends []string

	history []Label
}

func NewStabilizer(c Classifier, logger *zap.SugaredLogger, cfg Config) *Stabilizer {
	window := cfg.SmoothWindow
	if window <= 0 {
		window = defaultSmoothWindow
	}

	weights := DefaultWeights()
	for label, factor := range cfg.Weights {
		weights[label] = factor
	}

	return &Stabilizer{
		classifier: c,
		logger:     logger,
		window:     window,
		weights:    weights,
		backends:   []string{classifier.BackendDefault, classifier.BackendOpenCV},
	}
}

// Classify produces one stabilized (label, confidence) pair for the frame's
// face crop. It never fails: every error path maps to a well-formed neutral
// result, so a live overlay always has something to draw.
func (s *Stabilizer) Classify(face gocv.Mat) (label Label, confidence float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("emotion: classify", "PANIC", r)
			label, confidence = Neutral, 0.1
		}
	}()

	if face.Closed() || face.Empty() {
		return Neutral, 0.0
	}

	vision.EnsureMinSize(&face, minFaceSize)

	if err := vision.EnhanceContrast(&face); err != nil {
		s.logger.Errorw("emotion: classify: contrast enhancement", "ERROR", err)
		return Neutral, 0.1
	}

	img, err := vision.EncodeJPEG(face)
	if err != nil {
		s.logger.Errorw("emotion: classify: encode", "ERROR", err)
		return Neutral, 0.1
	}

	// One attempt per detector backend; whichever succeed are kept.
	var results []map[string]float64
	for _, backend := range s.backends {
		scores, err := s.classifier.Analyze(img, backend)
		if err != nil {
			s.logger.Warnw("emotion: classify: attempt failed", "backend", backend, "ERROR", err)
			continue
		}
		results = append(results, scores)
	}
	if len(results) == 0 {
		return Neutral, 0.0
	}

	averaged := averageScores(results)

	candidate := s.dominant(averaged)
	smoothed := s.smooth(candidate)
	confidence = averaged[smoothed] / 100.0

	// A weak neutral often hides a subtle expression: report the strongest
	// non-neutral raw signal instead when it clears the gate. The history
	// keeps the pre-override candidate, so this affects one frame only.
	if smoothed == Neutral && confidence < neutralConfidenceGate {
		if next, score := maxExcluding(averaged, Neutral); score > overrideScoreGate {
			return next, score / 100.0
		}
	}

	return smoothed, confidence
}

// =================================================================================================================

// averageScores takes the arithmetic mean per label across attempts. A label
// missing from an attempt counts as zero.
func averageScores(results []map[string]float64) map[Label]float64 {
	averaged := make(map[Label]float64, len(Labels))
	for _, label := range Labels {
		var sum float64
		for _, scores := range results {
			sum += scores[string(label)]
		}
		averaged[label] = sum / float64(len(results))
	}
	return averaged
}

// dominant picks the frame's candidate label from the weighted view of the
// averaged scores. The weights influence this pick only, never the reported
// confidence.
func (s *Stabilizer) dominant(averaged map[Label]float64) Label {
	best := Labels[0]
	bestScore := math.Inf(-1)
	for _, label := range Labels {
		weight, ok := s.weights[label]
		if !ok {
			weight = 1.0
		}
		if score := averaged[label] * weight; score > bestScore {
			best, bestScore = label, score
		}
	}
	return best
}

// smooth appends the candidate to the bounded history, evicting the oldest
// entry over capacity, and returns the most frequent label in the window.
// Ties go to the label whose first occurrence in the window is earliest.
func (s *Stabilizer) smooth(candidate Label) Label {
	s.history = append(s.history, candidate)
	if len(s.history) > s.window {
		s.history = s.history[1:]
	}

	counts := make(map[Label]int, len(s.history))
	order := make([]Label, 0, len(s.history))
	for _, label := range s.history {
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	best := candidate
	bestCount := 0
	for _, label := range order {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}

func maxExcluding(averaged map[Label]float64, skip Label) (Label, float64) {
	best := Unknown
	bestScore := math.Inf(-1)
	for _, label := range Labels {
		if label == skip {
			continue
		}
		if averaged[label] > bestScore {
			best, bestScore = label, averaged[label]
		}
	}
	return best, bestScore
}
