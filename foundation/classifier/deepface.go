// Package classifier talks to a DeepFace-style analyze endpoint. The service
// owns the neural network; this client only ships crops and parses scores.
package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiTimeout = 5

	// Detector backends the analyze endpoint re-runs inside the crop.
	// BackendDefault leaves the service's own choice in place.
	BackendDefault = ""
	BackendOpenCV  = "opencv"

	actionEmotion = "emotion"
)

type DeepFace struct {
	apiEndpoint string
}

func New(apiEndpoint string) *DeepFace {
	return &DeepFace{
		apiEndpoint: apiEndpoint,
	}
}

// Analyze submits one JPEG-encoded face crop and returns the per-label
// emotion scores of the first face result, on the 0-100 scale. Detection is
// never enforced: the service must return best-effort scores even when it
// can not re-detect a face inside the crop.
func (d *DeepFace) Analyze(img []byte, backend string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout*time.Second)
	defer cancel()

	body, err := json.Marshal(analyzeRequest{
		Img:              "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(img),
		Actions:          []string{actionEmotion},
		EnforceDetection: false,
		DetectorBackend:  backend,
		Silent:           true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, d.apiEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	req = req.WithContext(ctx)
	client := http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusInternalServerError {
		return nil, fmt.Errorf("internal server error 500: %s", string(respBytes))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(string(respBytes))
	}

	var r analyzeResponse
	if err := json.Unmarshal(respBytes, &r); err != nil {
		return nil, err
	}

	if len(r.Results) == 0 {
		return nil, errors.New("no face results in classifier response")
	}

	return r.Results[0].Emotion, nil
}
