package service

import (
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"devlingo_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// NoteService backs the "my dictionary" panel of the resources page.
type NoteService struct {
	NoteRepo *repository.NoteRepository
}

func NewNoteService(noteRepo *repository.NoteRepository) *NoteService {
	return &NoteService{NoteRepo: noteRepo}
}

func (s *NoteService) Create(userID uint, term, definition string) (*model.Note, error) {
	term = strings.TrimSpace(term)
	definition = strings.TrimSpace(definition)
	if term == "" || definition == "" {
		return nil, errors.New("term and definition are required")
	}

	note := &model.Note{
		UserID:     userID,
		Term:       term,
		Definition: definition,
	}
	if err := s.NoteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) List(userID uint) ([]model.Note, error) {
	return s.NoteRepo.FindByUser(userID)
}

// Delete removes a note after checking it belongs to the caller.
func (s *NoteService) Delete(userID uint, noteID string) error {
	note, err := s.NoteRepo.FindByID(noteID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrNoteNotFound
	}
	if err != nil {
		return err
	}
	if note.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.NoteRepo.Delete(noteID)
}
