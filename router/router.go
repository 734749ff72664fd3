package router

import (
	"net/http"

	surveyHandler "github.com/Praveen5612/skill-survey-bot/internal/survey"
	"github.com/Praveen5612/skill-survey-bot/internal/survey/service"
	"github.com/Praveen5612/skill-survey-bot/middleware"
	"github.com/Praveen5612/skill-survey-bot/socket"
)

func Setup(svc *service.SurveyService, hub *socket.Hub) http.Handler {
	mux := http.NewServeMux()

	// Dashboard WebSocket feed; rooms only open for existing surveys.
	surveyExists := func(id string) bool {
		_, err := svc.Repo.GetSurvey(id)
		return err == nil
	}
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r, surveyExists)
	})
	mux.Handle("/ws", middleware.AuthMiddleware(wsHandler))

	// REST API
	h := surveyHandler.NewSurveyHandler(svc)
	auth := middleware.AuthMiddleware

	mux.Handle("/api/surveys/create", auth(http.HandlerFunc(h.CreateSurvey)))
	mux.Handle("/api/surveys/delete", auth(http.HandlerFunc(h.DeleteSurvey)))
	mux.Handle("/api/surveys", auth(http.HandlerFunc(h.ListSurveys)))
	mux.Handle("/api/surveys/suggest", auth(http.HandlerFunc(h.SuggestSkills)))
	mux.Handle("/api/surveys/assigned", auth(http.HandlerFunc(h.AssignedSurveys)))
	mux.Handle("/api/surveys/respond", auth(http.HandlerFunc(h.SubmitResponse)))
	mux.Handle("/api/surveys/report", auth(http.HandlerFunc(h.Report)))
	mux.Handle("/api/surveys/export", auth(http.HandlerFunc(h.ExportResponses)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return middleware.CORSMiddleware(mux)
}
