package shelfbuilder

import (
	"context"

	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
)

// Session is a cheap, thread-safe handle that
// carries a Behavior snapshot and an Executor, and exposes every verb of
// the Surface API. Session is immutable after construction —
// NotInTransaction returns a derived copy rather than mutating in place.
type Session struct {
	behavior         *shelfbehavior.Behavior
	executor         Executor
	notInTransaction bool
}

// NewSession binds a Session to behavior and executor. The Behavior
// reference is snapshotted here: a Session built from a name looked up in
// a shelfbehavior.Registry keeps resolving against that snapshot even if
// the registry later publishes a newer generation under the same name.
func NewSession(behavior *shelfbehavior.Behavior, executor Executor) *Session {
	return &Session{behavior: behavior, executor: executor}
}

// Behavior returns the Behavior this Session resolves Settings against.
func (s *Session) Behavior() *shelfbehavior.Behavior { return s.behavior }

// NotInTransaction returns a Session whose accumulated OpSpecs bypass the
// enclosing TransactionalSession's context, if any. The original Session is unaffected.
func (s *Session) NotInTransaction() *Session {
	return &Session{behavior: s.behavior, executor: s.executor, notInTransaction: true}
}

func (s *Session) newChain() *chain {
	c := newChain(s.behavior, s.executor)
	c.notInTransaction = s.notInTransaction
	return c
}

// Insert starts a new Insert OpSpec against target.
func (s *Session) Insert(target Target) WriteBuilder {
	return newWriteBuilder(s.newChain(), target, shelf.OpInsert)
}

// Upsert starts a new Upsert OpSpec against target.
func (s *Session) Upsert(target Target) WriteBuilder {
	return newWriteBuilder(s.newChain(), target, shelf.OpUpsert)
}

// Update starts a new Update OpSpec against target.
func (s *Session) Update(target Target) WriteBuilder {
	return newWriteBuilder(s.newChain(), target, shelf.OpUpdate)
}

// Replace starts a new Replace OpSpec against target.
func (s *Session) Replace(target Target) WriteBuilder {
	return newWriteBuilder(s.newChain(), target, shelf.OpReplace)
}

// Delete starts a new Delete NoBinsBuilder against target.
func (s *Session) Delete(target Target) NoBinsBuilder {
	return newNoBinsBuilder(s.newChain(), target, shelf.OpDelete)
}

// Touch starts a new Touch NoBinsBuilder against target.
func (s *Session) Touch(target Target) NoBinsBuilder {
	return newNoBinsBuilder(s.newChain(), target, shelf.OpTouch)
}

// Exists starts a new Exists NoBinsBuilder against target.
func (s *Session) Exists(target Target) NoBinsBuilder {
	return newNoBinsBuilder(s.newChain(), target, shelf.OpExists)
}

// Query starts a QueryBuilder against target: a scan over a DataSet, or a
// point/batch read over explicit keys.
func (s *Session) Query(target Target) QueryBuilder {
	return newQueryBuilder(s.newChain(), target, shelf.OpQuery)
}

// Truncate starts a QueryBuilder that removes every record in a DataSet
// target when executed — the only target kind Truncate accepts.
func (s *Session) Truncate(target Target) QueryBuilder {
	return newQueryBuilder(s.newChain(), target, shelf.OpTruncate)
}

// Info runs a node-scoped info-command,
// resolved against the Info scope's Settings rather than the builder
// pipeline — info commands carry no key, op-list, or filter.
func (s *Session) Info(ctx context.Context, nodeAddress, command string) (string, error) {
	settings := s.behavior.Resolve(shelfbehavior.KindInfo, shelfbehavior.ShapeSystem, shelfbehavior.ModeAny)
	return s.executor.Info(ctx, nodeAddress, command, settings)
}
