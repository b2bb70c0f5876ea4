package emotion_test

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/superfeelapi/goEmotionCam/business/emotion"
)

// fakeClassifier scripts one response per Analyze call. Classify makes two
// calls per frame, one per detector backend.
type fakeClassifier struct {
	responses []response
	calls     int
}

type response struct {
	scores map[string]float64
	err    error
}

func (f *fakeClassifier) Analyze(img []byte, backend string) (map[string]float64, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		return nil, errors.New("no scripted response")
	}
	return f.responses[i].scores, f.responses[i].err
}

func ok(scores map[emotion.Label]float64) response {
	raw := make(map[string]float64, len(scores))
	for label, score := range scores {
		raw[string(label)] = score
	}
	return response{scores: raw}
}

func fail() response {
	return response{err: errors.New("detector found nothing")}
}

// both scripts the same scores for both backend attempts, so the averaged
// scores equal the input.
func both(scores map[emotion.Label]float64) []response {
	return []response{ok(scores), ok(scores)}
}

type panicClassifier struct{}

func (panicClassifier) Analyze(img []byte, backend string) (map[string]float64, error) {
	panic("classifier blew up")
}

func newStabilizer(c emotion.Classifier, cfg emotion.Config) *emotion.Stabilizer {
	return emotion.NewStabilizer(c, zap.NewNop().Sugar(), cfg)
}

func testFace(t *testing.T, rows, cols int) gocv.Mat {
	t.Helper()
	face := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { face.Close() })
	return face
}

func assertResult(t *testing.T, gotLabel emotion.Label, gotConfidence float64, wantLabel emotion.Label, wantConfidence float64) {
	t.Helper()
	if gotLabel != wantLabel {
		t.Fatalf("label: got %s, want %s", gotLabel, wantLabel)
	}
	if math.Abs(gotConfidence-wantConfidence) > 1e-9 {
		t.Fatalf("confidence: got %v, want %v", gotConfidence, wantConfidence)
	}
}

// =================================================================================================================

func TestClassifyEmptyImage(t *testing.T) {
	fc := &fakeClassifier{}
	s := newStabilizer(fc, emotion.Config{})

	empty := gocv.NewMat()
	defer empty.Close()

	label, confidence := s.Classify(empty)

	assertResult(t, label, confidence, emotion.Neutral, 0.0)
	if fc.calls != 0 {
		t.Fatalf("classifier should not run on an empty image, got %d calls", fc.calls)
	}
}

func TestClassifyAllAttemptsFail(t *testing.T) {
	fc := &fakeClassifier{responses: []response{fail(), fail()}}
	s := newStabilizer(fc, emotion.Config{})

	label, confidence := s.Classify(testFace(t, 120, 120))

	assertResult(t, label, confidence, emotion.Neutral, 0.0)
	if fc.calls != 2 {
		t.Fatalf("expected both backends attempted, got %d calls", fc.calls)
	}
}

func TestClassifySingleAttemptSucceeds(t *testing.T) {
	fc := &fakeClassifier{responses: []response{
		ok(map[emotion.Label]float64{
			emotion.Happy:    70,
			emotion.Neutral:  20,
			emotion.Sad:      5,
			emotion.Angry:    2,
			emotion.Disgust:  1,
			emotion.Fear:     1,
			emotion.Surprise: 1,
		}),
		fail(),
	}}
	s := newStabilizer(fc, emotion.Config{})

	label, confidence := s.Classify(testFace(t, 120, 120))

	// Weighted happy is 63 but still dominant; empty history makes it the
	// smoothed label, reported with the unweighted confidence.
	assertResult(t, label, confidence, emotion.Happy, 0.70)
}

func TestWeightingAffectsDominantPickOnly(t *testing.T) {
	fc := &fakeClassifier{responses: both(map[emotion.Label]float64{
		emotion.Sad:   50,
		emotion.Happy: 50,
	})}
	s := newStabilizer(fc, emotion.Config{})

	label, confidence := s.Classify(testFace(t, 120, 120))

	// sad wins the pick at weight 1.2 vs happy's 0.9, but the reported
	// confidence stays the unweighted 0.50.
	assertResult(t, label, confidence, emotion.Sad, 0.50)
}

func TestNeutralOverride(t *testing.T) {
	fc := &fakeClassifier{responses: both(map[emotion.Label]float64{
		emotion.Neutral:  55,
		emotion.Sad:      25,
		emotion.Happy:    5,
		emotion.Fear:     4,
		emotion.Angry:    3,
		emotion.Disgust:  2,
		emotion.Surprise: 1,
	})}
	s := newStabilizer(fc, emotion.Config{})

	label, confidence := s.Classify(testFace(t, 120, 120))

	// Smoothed result is a weak neutral (0.55 < 0.6); sad's raw 25 clears
	// the override gate.
	assertResult(t, label, confidence, emotion.Sad, 0.25)
}

func TestNeutralKeptWhenOthersWeak(t *testing.T) {
	fc := &fakeClassifier{responses: both(map[emotion.Label]float64{
		emotion.Neutral:  55,
		emotion.Sad:      15,
		emotion.Happy:    10,
		emotion.Fear:     8,
		emotion.Angry:    6,
		emotion.Disgust:  4,
		emotion.Surprise: 2,
	})}
	s := newStabilizer(fc, emotion.Config{})

	label, confidence := s.Classify(testFace(t, 120, 120))

	assertResult(t, label, confidence, emotion.Neutral, 0.55)
}

func TestHistoryEvictionAndStableTies(t *testing.T) {
	angryFrame := map[emotion.Label]float64{emotion.Angry: 60, emotion.Happy: 5}
	happyFrame := map[emotion.Label]float64{emotion.Happy: 80, emotion.Angry: 5}

	responses := append(both(angryFrame), both(happyFrame)...)
	responses = append(responses, both(happyFrame)...)
	fc := &fakeClassifier{responses: responses}
	s := newStabilizer(fc, emotion.Config{})

	face := testFace(t, 120, 120)

	// Frame 1: history [angry].
	label, confidence := s.Classify(face)
	assertResult(t, label, confidence, emotion.Angry, 0.60)

	// Frame 2: history [angry happy], a 1-1 tie; the earliest label in the
	// window wins, reported at this frame's unweighted angry score.
	label, confidence = s.Classify(face)
	assertResult(t, label, confidence, emotion.Angry, 0.05)

	// Frame 3: angry evicted, history [happy happy].
	label, confidence = s.Classify(face)
	assertResult(t, label, confidence, emotion.Happy, 0.80)
}

func TestSmoothingMajorityWindow3(t *testing.T) {
	angryFrame := map[emotion.Label]float64{emotion.Angry: 55, emotion.Happy: 10}
	mixedFrame := map[emotion.Label]float64{emotion.Happy: 60, emotion.Angry: 30}

	responses := append(both(angryFrame), both(angryFrame)...)
	responses = append(responses, both(mixedFrame)...)
	fc := &fakeClassifier{responses: responses}
	s := newStabilizer(fc, emotion.Config{SmoothWindow: 3})

	face := testFace(t, 120, 120)

	s.Classify(face)
	s.Classify(face)

	// Frame 3's candidate is happy, but angry holds the majority of the
	// 3-frame window; confidence comes from this frame's angry score.
	label, confidence := s.Classify(face)
	assertResult(t, label, confidence, emotion.Angry, 0.30)
}

func TestCustomWeights(t *testing.T) {
	fc := &fakeClassifier{responses: both(map[emotion.Label]float64{
		emotion.Happy: 40,
		emotion.Sad:   45,
	})}
	s := newStabilizer(fc, emotion.Config{
		Weights: map[emotion.Label]float64{emotion.Happy: 2.0},
	})

	label, confidence := s.Classify(testFace(t, 120, 120))

	// Boosted happy (80) beats weighted sad (54); confidence stays raw.
	assertResult(t, label, confidence, emotion.Happy, 0.40)
}

func TestClassifierPanicIsContained(t *testing.T) {
	s := newStabilizer(panicClassifier{}, emotion.Config{})

	label, confidence := s.Classify(testFace(t, 120, 120))

	assertResult(t, label, confidence, emotion.Neutral, 0.1)
}

func TestClassifyAlwaysWellFormed(t *testing.T) {
	known := make(map[emotion.Label]bool, len(emotion.Labels))
	for _, label := range emotion.Labels {
		known[label] = true
	}

	frames := []([]response){
		both(map[emotion.Label]float64{}),
		{fail(), ok(map[emotion.Label]float64{emotion.Surprise: 100})},
		{fail(), fail()},
		both(map[emotion.Label]float64{emotion.Neutral: 100}),
	}

	var responses []response
	for _, f := range frames {
		responses = append(responses, f...)
	}
	fc := &fakeClassifier{responses: responses}
	s := newStabilizer(fc, emotion.Config{})

	// Undersized crops are upscaled, never rejected.
	face := testFace(t, 40, 40)

	for i := range frames {
		label, confidence := s.Classify(face)
		if !known[label] {
			t.Fatalf("frame %d: label %q outside the closed set", i, label)
		}
		if confidence < 0 || confidence > 1 {
			t.Fatalf("frame %d: confidence %v outside [0,1]", i, confidence)
		}
	}
}
