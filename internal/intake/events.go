// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"github.com/sirupsen/logrus"

	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/validation"
)

// EventKind names a pipeline stage.
type EventKind string

const (
	EventExtracted EventKind = "extracted"
	EventValidated EventKind = "validated"
	EventRejected  EventKind = "rejected"
)

// Event is a notification about one document. Extraction and Report point at
// the caller's data and must not be modified.
type Event struct {
	Kind       EventKind
	SourceID   string
	SourceUsed string
	Extraction *extraction.Result
	Report     *validation.Report
	Err        error
}

// Observer receives pipeline events. Observers run synchronously and cannot
// change the outcome of a call.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// LogObserver writes one log line per event.
type LogObserver struct {
	Logger logrus.FieldLogger
}

func (o LogObserver) Observe(ev Event) {
	entry := o.Logger.WithFields(logrus.Fields{
		"event":     string(ev.Kind),
		"source_id": ev.SourceID,
		"source":    ev.SourceUsed,
	})

	switch ev.Kind {
	case EventRejected:
		entry.WithError(ev.Err).Warn("document rejected")
	case EventExtracted:
		entry.WithField("fields_found", ev.Extraction.FoundCount()).Debug("fields extracted")
	case EventValidated:
		entry.WithFields(logrus.Fields{
			"errors":      len(ev.Report.Errors),
			"warnings":    len(ev.Report.Warnings),
			"suggestions": len(ev.Report.Suggestions),
			"blocking":    ev.Report.Blocking(),
		}).Info("document validated")
	}
}
