package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"event-notifier/internal/logging"
	"event-notifier/internal/model"
	"event-notifier/internal/service"
)

type listPage struct {
	Title         string
	Events        []model.Event
	CategoryNames map[uint]string
}

type formPage struct {
	Title      string
	Heading    string
	Action     string
	Submit     string
	Error      string
	Form       service.EventInput
	Categories []model.Category
}

type detailPage struct {
	Title        string
	Event        *model.Event
	CategoryName string
}

// handleList shows every event that has not ended yet, soonest first.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := s.events.ListCurrent(ctx, time.Now())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	names, err := s.categories.Names(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "list", listPage{
		Title:         "이벤트 목록",
		Events:        events,
		CategoryNames: names,
	})
}

func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, formPage{
		Title:   "새 이벤트",
		Heading: "새 이벤트 등록",
		Action:  "/new",
		Submit:  "등록",
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	input := readEventInput(r)

	_, err := s.events.Create(r.Context(), input)
	switch {
	case service.IsValidation(err):
		s.renderForm(w, r, http.StatusUnprocessableEntity, formPage{
			Title:   "새 이벤트",
			Heading: "새 이벤트 등록",
			Action:  "/new",
			Submit:  "등록",
			Error:   err.Error(),
			Form:    input,
		})
	case err != nil:
		s.serverError(w, r, err)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	event, err := s.events.Get(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	names, err := s.categories.Names(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "detail", detailPage{
		Title:        event.Title,
		Event:        event,
		CategoryName: names[event.CategoryID],
	})
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	event, err := s.events.Get(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.renderForm(w, r, http.StatusOK, formPage{
		Title:   "이벤트 수정",
		Heading: "이벤트 수정",
		Action:  fmt.Sprintf("/events/%d/edit", event.ID),
		Submit:  "저장",
		Form: service.EventInput{
			Title:       event.Title,
			Description: event.Description,
			Location:    event.Location,
			StartDate:   event.StartDate.Format(model.DateLayout),
			EndDate:     event.EndDate.Format(model.DateLayout),
			CategoryID:  strconv.FormatUint(uint64(event.CategoryID), 10),
		},
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	input := readEventInput(r)

	_, err := s.events.Update(r.Context(), id, input)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.NotFound(w, r)
	case service.IsValidation(err):
		s.renderForm(w, r, http.StatusUnprocessableEntity, formPage{
			Title:   "이벤트 수정",
			Heading: "이벤트 수정",
			Action:  fmt.Sprintf("/events/%d/edit", id),
			Submit:  "저장",
			Error:   err.Error(),
			Form:    input,
		})
	case err != nil:
		s.serverError(w, r, err)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	err := s.events.Delete(r.Context(), id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.NotFound(w, r)
	case err != nil:
		s.serverError(w, r, err)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// renderForm fills in the category options and renders the shared event
// form.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, page formPage) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	page.Categories = categories
	s.render(w, r, status, "form", page)
}

// render executes a page template into a buffer first, so a template fault
// becomes a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logging.FromContext(r.Context()).Error("render template", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("request failed", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func readEventInput(r *http.Request) service.EventInput {
	return service.EventInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Location:    r.PostFormValue("location"),
		StartDate:   r.PostFormValue("start_date"),
		EndDate:     r.PostFormValue("end_date"),
		CategoryID:  r.PostFormValue("category_id"),
	}
}

func eventID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
