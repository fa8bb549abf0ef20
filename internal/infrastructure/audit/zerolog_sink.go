package audit

import (
	"context"

	"github.com/rs/zerolog"

	appaudit "github.com/quanpham-dev/warehouse-api/internal/application/audit"
)

var _ appaudit.Sink = (*ZerologSink)(nil)

// ZerologSink writes audit events to the structured log. Emit never returns
// an error and never blocks the caller beyond the logger write itself, so
// mutations cannot fail on audit.
type ZerologSink struct {
	log zerolog.Logger
}

func NewZerologSink(log zerolog.Logger) *ZerologSink {
	return &ZerologSink{log: log.With().Str("component", "audit").Logger()}
}

func (s *ZerologSink) Emit(_ context.Context, e appaudit.Event) {
	ev := s.log.Info()
	if e.Err != "" {
		ev = s.log.Warn().Str("error", e.Err)
	}
	ev = ev.
		Str("audit_id", e.ID).
		Str("type", e.Type).
		Str("actor", e.Actor).
		Str("entity", e.Entity).
		Str("code", e.Code).
		Time("at", e.At)
	if e.Before != nil {
		ev = ev.Interface("before", e.Before)
	}
	if e.After != nil {
		ev = ev.Interface("after", e.After)
	}
	ev.Msg("audit event")
}
