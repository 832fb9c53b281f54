package rdflog

import "testing"

func TestNopSinkDoesNotPanic(t *testing.T) {
	s := NewNop()
	s.Debugf(Hash, "", "opening %s", "foo.db")
	s.Warnf(Storage, "foo.db", "clone skipped entry")
	s.Errorf(Query, "", "bind_match failed: %v", errTest{})
	if err := s.Sync(); err != nil {
		// zap's Nop sync can return an error on some platforms for
		// stdout/stderr syncing; that's fine, we only assert no panic.
		_ = err
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }
