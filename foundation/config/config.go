package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

func GetProfile(configPath string, profileID string) (Profile, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return Profile{}, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Profile{}, err
	}

	var config Config

	if err := json.Unmarshal(bytes, &config); err != nil {
		return Profile{}, err
	}

	profile, exists := profileExists(config.Profiles, profileID)
	if !exists {
		return Profile{}, fmt.Errorf("profile[%s] does not exist", profileID)
	}

	return profile, nil
}

func profileExists(profiles []Profile, profileID string) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == profileID {
			return p, true
		}
	}
	return Profile{}, false
}
