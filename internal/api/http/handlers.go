package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizdrill/quizdrill/internal/quiz"
	"github.com/quizdrill/quizdrill/internal/visitor"
)

// Mount attaches the quiz API under the given router. The router is expected
// to carry the visitor middleware so handlers can read the sid.
func Mount(r chi.Router, svc *quiz.Service) {
	r.Get("/categories", CategoriesHandler(svc))
	r.Get("/next", NextQuestionHandler(svc))
	r.Post("/answer", AnswerHandler(svc))
	r.Post("/reset", ResetHandler(svc))
	r.Post("/wrong/clear", ClearWrongHandler(svc))
}

func CategoriesHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"categories": svc.Categories()})
	}
}

// GET /next?category=all&mode=all|wrong
func NextQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := visitor.FromContext(r.Context())
		category := r.URL.Query().Get("category")
		if category == "" {
			category = quiz.CategoryAll
		}
		mode := quiz.NormalizeMode(r.URL.Query().Get("mode"))

		view, wrongCount, err := svc.NextQuestion(r.Context(), sid, mode, category)
		if err != nil {
			if errors.Is(err, quiz.ErrExhausted) {
				msg := "no questions in this category"
				if mode == quiz.ModeWrong {
					msg = "no wrong answers to drill in this category"
				}
				writeError(w, http.StatusBadRequest, msg)
				return
			}
			writeError(w, http.StatusInternalServerError, "session unavailable")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			quiz.QuestionView
			WrongCount int    `json:"wrong_count"`
			Mode       string `json:"mode"`
		}{QuestionView: view, WrongCount: wrongCount, Mode: mode})
	}
}

// POST /answer  { "id": 0, "choice": 2 }
func AnswerHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := visitor.FromContext(r.Context())
		var req struct {
			ID     *int `json:"id"`
			Choice *int `json:"choice"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == nil || req.Choice == nil {
			writeError(w, http.StatusBadRequest, "id and choice must be integers")
			return
		}

		res, err := svc.Answer(r.Context(), sid, *req.ID, *req.Choice)
		if err != nil {
			if errors.Is(err, quiz.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "session unavailable")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func ResetHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := visitor.FromContext(r.Context())
		stats, err := svc.Reset(r.Context(), sid)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "session unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "stats": stats})
	}
}

func ClearWrongHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := visitor.FromContext(r.Context())
		if err := svc.ClearWrong(r.Context(), sid); err != nil {
			writeError(w, http.StatusInternalServerError, "session unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "wrong_count": 0})
	}
}
