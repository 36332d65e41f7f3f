// Package screens holds the dependencies shared by every TUI screen.
package screens

import (
	"time"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/coach"
	"github.com/abhisek/rolwijzer/internal/flashcard"
	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/logging"
	"github.com/abhisek/rolwijzer/internal/progress"
)

// Env is injected into screens by the app model. Nothing in it is global.
type Env struct {
	Catalog  *catalog.Catalog
	Ledger   *ledger.Ledger
	Progress *progress.Aggregator
	Coach    *coach.Service
	Log      *logging.Logger

	RevealDelay  time.Duration
	CoachTimeout time.Duration
}

// NewEnv wires an Env over a catalogue and ledger. coach and log may be nil.
func NewEnv(c *catalog.Catalog, l *ledger.Ledger, svc *coach.Service, log *logging.Logger) *Env {
	if log == nil {
		log = logging.Nop()
	}
	return &Env{
		Catalog:      c,
		Ledger:       l,
		Progress:     progress.New(c, l),
		Coach:        svc,
		Log:          log,
		RevealDelay:  flashcard.DefaultRevealDelay,
		CoachTimeout: 30 * time.Second,
	}
}
