// Copyright 2026 The Graphstore Authors
// This file is part of graphstore.
//
// Graphstore is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Graphstore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.

// Package rdflog provides the structured log sink shared across a
// World: origin-tagged, leveled records, mirroring librdf_log's
// (code, level, origin, locator, message) shape.
package rdflog

import (
	"go.uber.org/zap"
)

// Origin tags the subsystem that raised a log record.
type Origin string

const (
	Storage Origin = "storage"
	Hash    Origin = "hash"
	Query   Origin = "query"
	Parser  Origin = "parser"
)

// Sink is the logging entry point handed to every component that can
// fail or needs tracing. The zero value is not usable; construct with
// New or NewNop.
type Sink struct {
	z *zap.SugaredLogger
}

// New builds a Sink around a production zap logger.
func New() (*Sink, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Sink{z: l.Sugar()}, nil
}

// NewNop builds a Sink that discards everything, for tests and callers
// that don't want log output.
func NewNop() *Sink {
	return &Sink{z: zap.NewNop().Sugar()}
}

// NewDevelopment builds a Sink with human-readable, colorized output
// suitable for local debugging; Debugf records are emitted.
func NewDevelopment() (*Sink, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Sink{z: l.Sugar()}, nil
}

func (s *Sink) with(origin Origin, locator string) *zap.SugaredLogger {
	if locator == "" {
		return s.z.With("origin", origin)
	}
	return s.z.With("origin", origin, "locator", locator)
}

// Debugf logs a trace-level record. Cheap no-op when the sink's level
// excludes debug, matching the original's #ifdef RASQAL_DEBUG guards.
func (s *Sink) Debugf(origin Origin, locator, format string, args ...interface{}) {
	s.with(origin, locator).Debugf(format, args...)
}

// Warnf logs a recoverable-condition record (e.g. NotFound is never
// logged at all; Warnf is for things like a clone skipping a bad entry).
func (s *Sink) Warnf(origin Origin, locator, format string, args ...interface{}) {
	s.with(origin, locator).Warnf(format, args...)
}

// Errorf logs a failure that will be returned to the caller as an error.
func (s *Sink) Errorf(origin Origin, locator, format string, args ...interface{}) {
	s.with(origin, locator).Errorf(format, args...)
}

// Sync flushes any buffered log entries. Call before process exit.
func (s *Sink) Sync() error {
	return s.z.Sync()
}
