/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for Mercy dispatch telemetry.
Reporters are notified after every dispatch so callers can log or record outcomes.
*/

package core

import (
	"sync"
	"time"

	"github.com/kleascm/mercy/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// DispatchEvent describes one completed dispatch
type DispatchEvent struct {
	Request  interfaces.TransformRequest
	Result   interfaces.TransformResult
	Err      error
	Duration time.Duration
}

// Reporter defines the interface for dispatch telemetry hooks.
type Reporter interface {
	// OnDispatched is called after every dispatch, successful or not.
	OnDispatched(event DispatchEvent)
}

// LoggerReporter logs dispatch events using a logrus logger.
type LoggerReporter struct {
	logger logrus.FieldLogger
}

// NewLoggerReporter creates a new LoggerReporter.
func NewLoggerReporter(logger logrus.FieldLogger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnDispatched logs the outcome at debug level, or warn for environment failures.
func (r *LoggerReporter) OnDispatched(event DispatchEvent) {
	fields := logrus.Fields{
		"category": event.Request.Category.String(),
		"protocol": event.Request.Protocol,
		"duration": event.Duration,
	}

	switch {
	case event.Err != nil:
		r.logger.WithFields(fields).WithError(event.Err).Warn("DISPATCH failed")
	case event.Result.IsOk():
		r.logger.WithFields(fields).Debug("DISPATCH ok")
	default:
		r.logger.WithFields(fields).WithField("reason", event.Result.Reason()).Debug("DISPATCH unsupported")
	}
}

// StatsReporter counts dispatch outcomes per category.
type StatsReporter struct {
	mu     sync.Mutex
	counts map[interfaces.Category]*Outcomes
}

// Outcomes is a per-category tally
type Outcomes struct {
	Ok          int `json:"ok"`
	Unsupported int `json:"unsupported"`
	Failed      int `json:"failed"`
}

// NewStatsReporter creates an empty StatsReporter.
func NewStatsReporter() *StatsReporter {
	return &StatsReporter{counts: make(map[interfaces.Category]*Outcomes)}
}

// OnDispatched records the outcome.
func (r *StatsReporter) OnDispatched(event DispatchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.counts[event.Request.Category]
	if !ok {
		o = &Outcomes{}
		r.counts[event.Request.Category] = o
	}
	switch {
	case event.Err != nil:
		o.Failed++
	case event.Result.IsOk():
		o.Ok++
	default:
		o.Unsupported++
	}
}

// Snapshot returns a copy of the tallies keyed by category name.
func (r *StatsReporter) Snapshot() map[string]Outcomes {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Outcomes, len(r.counts))
	for c, o := range r.counts {
		out[c.String()] = *o
	}
	return out
}
