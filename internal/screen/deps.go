package screen

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/config"
	"github.com/abhisek/cogniq/internal/store"
)

// Deps are the services screens share.
type Deps struct {
	Client      *api.Client
	EventRepo   store.EventRepo
	Credentials store.CredentialRepo
	Config      config.Config

	// Clock drives assessment timers. Nil uses the system clock.
	Clock assessment.Clock

	// Stderr receives warnings. Nil uses os.Stderr.
	Stderr io.Writer
}

// LogSessionEvent appends a lifecycle event. A failure is reported as a
// warning and never interrupts the learner.
func (d Deps) LogSessionEvent(ctx context.Context, data store.SessionEventData) {
	if d.EventRepo == nil {
		return
	}
	if err := d.EventRepo.AppendSessionEvent(ctx, data); err != nil {
		w := d.Stderr
		if w == nil {
			w = os.Stderr
		}
		fmt.Fprintf(w, "warning: failed to log session event: %v\n", err)
	}
}

// LoggedIn reports whether the client holds a token.
func (d Deps) LoggedIn() bool {
	return d.Client != nil && d.Client.Token() != ""
}
