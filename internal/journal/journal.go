package journal

import (
	"time"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

// Entry is one journal line.
type Entry struct {
	Time time.Time `json:"time"`
	Pack string    `json:"pack"`
	puzzle.Event
}

// Journal is a puzzle.Observer that writes every event of one pack's
// sessions to a Writer.
type Journal struct {
	w    *Writer
	pack string

	// OnError receives write failures. Optional.
	OnError func(error)
}

// New returns an observer writing pack events to w.
func New(w *Writer, pack string) *Journal {
	return &Journal{w: w, pack: pack}
}

// OnEvent implements puzzle.Observer.
func (j *Journal) OnEvent(e puzzle.Event) {
	err := j.w.Write(Entry{
		Time:  j.w.now().UTC(),
		Pack:  j.pack,
		Event: e,
	})
	if err != nil && j.OnError != nil {
		j.OnError(err)
	}
}

var _ puzzle.Observer = (*Journal)(nil)
