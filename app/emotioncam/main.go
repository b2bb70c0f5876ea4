package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/google/uuid"

	"github.com/superfeelapi/goEmotionCam/business/emotion"
	"github.com/superfeelapi/goEmotionCam/business/worker"
	"github.com/superfeelapi/goEmotionCam/foundation/camera"
	"github.com/superfeelapi/goEmotionCam/foundation/classifier"
	"github.com/superfeelapi/goEmotionCam/foundation/config"
	"github.com/superfeelapi/goEmotionCam/foundation/external/dashboard"
	"github.com/superfeelapi/goEmotionCam/foundation/logger"
	"github.com/superfeelapi/goEmotionCam/foundation/pubsub"
	"github.com/superfeelapi/goEmotionCam/foundation/redis"
	"github.com/superfeelapi/goEmotionCam/foundation/vision"
)

var (
	version   string
	buildTime string
)

func main() {
	// =================================================================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Camera struct {
			Device int `conf:"default:0"`
			Width  int `conf:"default:1280"`
			Height int `conf:"default:720"`
		}
		Vision struct {
			CascadeFile string `conf:"default:/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml"`
		}
		Classifier struct {
			ApiEndpoint string `conf:"default:http://127.0.0.1:5005/analyze"`
		}
		Profile struct {
			ConfigFilePath string `conf:"default:/etc/emotioncam/profiles.json,noprint"`
			ID             string `conf:"default:default"`
		}
		Window struct {
			Title string `conf:"default:Emotion Detection"`
		}
		Snapshot struct {
			Directory string `conf:"default:/var/lib/emotioncam/snapshots/"`
		}
		Redis struct {
			Enabled        bool   `conf:"default:false"`
			Address        string `conf:"default:127.0.0.1:6379"`
			Password       string `conf:"noprint"`
			EmotionChannel string `conf:"default:emotioncam:emotions"`
		}
		Dashboard struct {
			Enabled bool   `conf:"default:false"`
			Scheme  string `conf:"default:ws"`
			Host    string `conf:"default:127.0.0.1:8080"`
			Path    string `conf:"default:/emotion"`
			ApiKey  string `conf:"noprint"`
		}
		Logger struct {
			LogDirectory string `conf:"default:/var/log/emotioncam/sessions/,noprint"`
		}
	}{
		Version: conf.Version{
			Build: version,
			Desc:  buildTime,
		},
	}

	help, err := conf.Parse("EMOTIONCAM", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return
		}
		fmt.Fprintf(os.Stderr, "parsing config: %s\n", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Session ID and Directories

	sessionID := uuid.New().String()

	if err := os.MkdirAll(cfg.Snapshot.Directory, os.ModePerm); err != nil {
		fmt.Fprintf(os.Stderr, "creating snapshot directory: %s\n", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Application Logger

	log, err := logger.New(cfg.Logger.LogDirectory, sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// =================================================================================================================
	// Profile Configuration

	profile, err := config.GetProfile(cfg.Profile.ConfigFilePath, cfg.Profile.ID)
	if err != nil {
		// Built-in defaults cover a missing or incomplete profile file.
		log.Warnw("startup", "profile", cfg.Profile.ID, "ERROR", err)
		profile = config.Profile{ID: cfg.Profile.ID, Name: "built-in defaults"}
	}

	// =================================================================================================================
	// Configuration Stringify

	out, err := conf.String(&cfg)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
	}
	log.Infow("startup", "session", sessionID, "config", out)

	// =================================================================================================================
	// Camera

	cam, err := camera.Open(cfg.Camera.Device, cfg.Camera.Width, cfg.Camera.Height)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}
	defer cam.Close()

	// =================================================================================================================
	// Face Detector

	detector, err := vision.NewFaceDetector(cfg.Vision.CascadeFile)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}
	defer detector.Close()

	// =================================================================================================================
	// Emotion Stabilizer

	weights := make(map[emotion.Label]float64, len(profile.Weights))
	for name, factor := range profile.Weights {
		weights[emotion.Label(name)] = factor
	}

	stabilizer := emotion.NewStabilizer(classifier.New(cfg.Classifier.ApiEndpoint), log, emotion.Config{
		SmoothWindow: profile.SmoothWindow,
		Weights:      weights,
	})

	// =================================================================================================================
	// Redis

	var redisClient *redis.Redis
	if cfg.Redis.Enabled {
		redisClient, err = redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.EmotionChannel, log)
		if err != nil {
			log.Errorw("startup", "ERROR", err)
		}
	}

	// =================================================================================================================
	// Dashboard

	var dashboardSocket *dashboard.Socket
	if cfg.Dashboard.Enabled {
		dashboardSocket, err = dashboard.Dial(cfg.Dashboard.Scheme, cfg.Dashboard.Host, cfg.Dashboard.Path, cfg.Dashboard.ApiKey)
		if err != nil {
			log.Errorw("startup", "ERROR", err)
		}
	}

	// =================================================================================================================
	// Run Worker

	workerCh := worker.Run(worker.Settings{
		Logger:     log,
		Camera:     cam,
		Detector:   detector,
		Stabilizer: stabilizer,
		Broker:     pubsub.NewBroker(),
		Redis:      redisClient,
		Dashboard:  dashboardSocket,
		Config: worker.Config{
			SessionID:         sessionID,
			ProfileName:       profile.Name,
			WindowTitle:       cfg.Window.Title,
			SnapshotDirectory: cfg.Snapshot.Directory,
		},
	})

	// Blocking main and waiting for error or shutdown.
	err = <-workerCh

	log.Infow("shutdown", "status", "shutdown started")
	defer log.Infow("shutdown", "status", "shutdown complete")

	if err != nil {
		log.Errorw("shutdown", "ERROR", err)
	}
}
