package gamification

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteTag classifies a training note.
type NoteTag string

const (
	NoteWorkout    NoteTag = "workout"
	NoteRecovery   NoteTag = "recovery"
	NoteSupplement NoteTag = "supplement"
	NoteGoal       NoteTag = "goal"
	NoteOther      NoteTag = "other"
)

// ValidNoteTag reports whether the tag is one of the known values.
func ValidNoteTag(tag NoteTag) bool {
	switch tag {
	case NoteWorkout, NoteRecovery, NoteSupplement, NoteGoal, NoteOther:
		return true
	}
	return false
}

// Note is a free-form journal entry. Storage is append-only and unbounded;
// list widgets read a capped recent slice via RecentNotes.
type Note struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
	Tag     NoteTag   `json:"tag"`
}

// MaxNoteLength bounds a single note's content.
const MaxNoteLength = 2000

// AddNote appends a note to the record.
func AddNote(r *Record, content string, tag NoteTag, now time.Time) (*Note, []Achievement, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, fmt.Errorf("%w: note content must not be empty", ErrInvalidArgument)
	}
	if len(content) > MaxNoteLength {
		return nil, nil, fmt.Errorf("%w: note content exceeds %d characters", ErrInvalidArgument, MaxNoteLength)
	}
	if !ValidNoteTag(tag) {
		return nil, nil, fmt.Errorf("%w: unknown note tag %q", ErrInvalidArgument, tag)
	}

	note := Note{
		ID:      uuid.New().String(),
		Date:    now,
		Content: content,
		Tag:     tag,
	}
	r.Notes = append(r.Notes, note)

	newly, err := CheckAchievements(r, now)
	return &note, newly, err
}

// RecentNotes returns up to limit notes, newest first.
func RecentNotes(r *Record, limit int) []Note {
	notes := make([]Note, len(r.Notes))
	copy(notes, r.Notes)
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date.After(notes[j].Date) })
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}
	return notes
}
