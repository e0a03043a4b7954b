package calculation

import "github.com/rpgo/tax-estimator/internal/domain"

// Logger is the logging surface of the estimator. The default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// logNotes writes skipped items as warnings and everything else at debug.
func logNotes(l Logger, notes []domain.Note) {
	for _, n := range notes {
		if n.Kind == domain.NoteSkipped {
			l.Warnf("%s skipped: %s", n.Subject, n.Message)
			continue
		}
		l.Debugf("%s %s: %s", n.Kind, n.Subject, n.Message)
	}
}
