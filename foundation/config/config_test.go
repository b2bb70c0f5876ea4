package config_test

import (
	"testing"

	"github.com/superfeelapi/goEmotionCam/foundation/config"
)

const (
	filepath  = "config.json"
	profileID = "default"
)

func TestGetProfile(t *testing.T) {
	t.Run("profile exists", func(t *testing.T) {
		t.Parallel()
		profile, err := config.GetProfile(filepath, profileID)
		if err != nil {
			t.Fatal(err)
		}
		if profile.SmoothWindow != 2 {
			t.Fatalf("smooth_window: got %d, want 2", profile.SmoothWindow)
		}
		if profile.Weights["sad"] != 1.2 {
			t.Fatalf("weights[sad]: got %v, want 1.2", profile.Weights["sad"])
		}
	})

	t.Run("profile does not exist", func(t *testing.T) {
		t.Parallel()
		_, err := config.GetProfile(filepath, "nope")
		if err == nil {
			t.Fatal("expected an error for a missing profile")
		}
	})
}
