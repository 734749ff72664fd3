package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Praveen5612/skill-survey-bot/catalog"
	"github.com/Praveen5612/skill-survey-bot/config"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/repository"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/service"
	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
	"github.com/Praveen5612/skill-survey-bot/resume"
	"github.com/Praveen5612/skill-survey-bot/router"
	"github.com/Praveen5612/skill-survey-bot/socket"
	"github.com/Praveen5612/skill-survey-bot/store"
)

func main() {
	// Load .env file; fall back to OS environment variables.
	if err := godotenv.Load(); err != nil {
		// Logger is not up yet; this is the one message before Init.
		os.Stderr.WriteString("No .env file found, using environment variables from OS\n")
	}

	cfgPath := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		os.Stderr.WriteString("Invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level)
	defer logger.Log.Sync()

	// The auth middleware validates tokens against JWT_SECRET; export
	// the configured secret so both paths agree.
	if cfg.Auth.JWTSecret != "" {
		os.Setenv("JWT_SECRET", cfg.Auth.JWTSecret)
	}

	// Open the survey document and repair missing top-level keys once.
	st := store.Open(cfg.Store.DataFile)
	if _, err := st.EnsureStructure(); err != nil {
		logger.Sugar.Fatalf("Failed to open survey document %s: %v", cfg.Store.DataFile, err)
	}
	logger.Sugar.Infof("Survey document ready at %s", cfg.Store.DataFile)

	cat := catalog.New(cfg.Catalog.ProcessFile, cfg.Catalog.UserFile)
	logger.Sugar.Infof("Catalogs loaded: %d processes, %d users", len(cat.Processes()), len(cat.Users()))
	if cfg.Catalog.Watch {
		if stop, err := cat.Watch(); err != nil {
			logger.Sugar.Warnf("Catalog watching disabled: %v", err)
		} else {
			defer stop()
		}
	}

	corpus := resume.NewCorpus(cfg.Resume.Dir)
	logger.Sugar.Infof("Resume corpus loaded: %d files", len(corpus.Texts()))
	if cfg.Resume.Watch {
		if stop, err := corpus.Watch(); err != nil {
			logger.Sugar.Warnf("Resume watching disabled: %v", err)
		} else {
			defer stop()
		}
	}

	// The hub fans survey events out to connected dashboards.
	hub := socket.NewHub()
	go hub.Run()

	repo := repository.NewSurveyRepository(st)
	svc := service.NewSurveyService(repo, cat, corpus, hub)

	handler := router.Setup(svc, hub)

	logger.Sugar.Infof("Skill survey service listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
