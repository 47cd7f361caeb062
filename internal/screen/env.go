package screen

import (
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/errorbank"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/themes"
)

// Env carries the services every screen may need. It is built once by
// the command layer and passed down explicitly.
type Env struct {
	Config config.Config
	Themes *themes.Store
	Bank   *errorbank.Bank

	// History is nil when the history database could not be opened.
	History store.HistoryRepo

	Log  *slog.Logger
	Rand *rand.Rand
}
