// Package audit writes the user action trail. Entries are structured log
// lines carrying the acting user, the action name and a human-readable
// detail, recorded through the background dispatcher so workflows never wait
// on file IO.
package audit

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/infrastructure/queue"
)

// Recorder implements ports.AuditRecorder on top of a zerolog logger.
// When a dispatcher is present, writes are queued per user; without one they
// happen inline.
type Recorder struct {
	logger     zerolog.Logger
	dispatcher *queue.Dispatcher
}

func NewRecorder(logger zerolog.Logger, dispatcher *queue.Dispatcher) *Recorder {
	return &Recorder{logger: logger, dispatcher: dispatcher}
}

// UserAction records one audit entry. It never returns an error so recording
// cannot fail the workflow that triggered it.
func (r *Recorder) UserAction(userID int64, action, detail string) {
	write := func(context.Context) error {
		r.logger.Info().
			Int64("user_id", userID).
			Str("action", action).
			Str("detail", detail).
			Msg("user action")
		return nil
	}

	if r.dispatcher == nil {
		_ = write(context.Background())
		return
	}
	r.dispatcher.Submit(queue.Task{
		Key: "user:" + strconv.FormatInt(userID, 10),
		Run: write,
	})
}
