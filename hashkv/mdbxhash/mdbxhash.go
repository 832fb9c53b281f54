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

// Package mdbxhash implements hashkv.Backend (C3) over a single MDBX
// table opened with the DupSort flag, giving graphstore its ordered,
// duplicate-key-permitting on-disk store. It is the direct Go
// restatement of librdf's Tokyo Cabinet B-tree hash back-end.
package mdbxhash

import (
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/erigontech/mdbx-go/mdbx"

	"github.com/kepler-42/graphstore/datum"
	"github.com/kepler-42/graphstore/hashkv"
	"github.com/kepler-42/graphstore/rdflog"
	"github.com/kepler-42/graphstore/rerr"
	"github.com/kepler-42/graphstore/wlock"
)

const tableName = "hash"

// Option configures a Backend before Open.
type Option func(*Backend)

// WithMapSize sets the MDBX environment's maximum map size. Defaults
// to 1 GiB, a reasonable geometry default for a small auxiliary
// database.
func WithMapSize(size datasize.ByteSize) Option {
	return func(b *Backend) { b.mapSize = size }
}

// WithLog attaches a structured log sink. Defaults to a no-op sink.
func WithLog(sink *rdflog.Sink) Option {
	return func(b *Backend) { b.log = sink }
}

// Backend is an hashkv.Backend over one MDBX DupSort table.
type Backend struct {
	env     *mdbx.Env
	dbi     mdbx.DBI
	path    string
	mode    hashkv.Mode
	mapSize datasize.ByteSize
	log     *rdflog.Sink
	lock    *wlock.Lock
	open    bool
}

// New constructs an unopened Backend. Call Open before use.
func New(opts ...Option) *Backend {
	b := &Backend{
		mapSize: 1 * datasize.GB,
		log:     rdflog.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) locator() string { return b.path }

// Open implements hashkv.Backend. identifier becomes the file
// "<identifier>.db" in the current directory convention; callers
// wanting a specific directory should pass a path-qualified identifier.
func (b *Backend) Open(identifier string, mode hashkv.Mode) error {
	path := identifier + ".db"
	if mode&hashkv.Writable != 0 {
		l := wlock.New(path)
		if err := l.TryWriter(); err != nil {
			return err
		}
		b.lock = l
	}

	if mode&hashkv.New == 0 {
		if _, err := os.Stat(path); err != nil {
			b.releaseLock()
			return rerr.Wrapf(rerr.StorageIO, "backend %s does not exist and Mode.New was not set: %v", path, err)
		}
	}

	env, err := mdbx.NewEnv()
	if err != nil {
		b.releaseLock()
		return rerr.Wrapf(rerr.StorageIO, "creating mdbx env for %s: %v", path, err)
	}
	if err := env.SetGeometry(-1, -1, int(b.mapSize.Bytes()), -1, -1, -1); err != nil {
		b.releaseLock()
		return rerr.Wrapf(rerr.StorageIO, "setting geometry for %s: %v", path, err)
	}
	if err := env.SetOption(mdbx.OptMaxDB, 1); err != nil {
		b.releaseLock()
		return rerr.Wrapf(rerr.StorageIO, "setting max dbs for %s: %v", path, err)
	}

	flags := uint(mdbx.NoSubdir)
	if mode&hashkv.Writable == 0 {
		flags |= mdbx.Readonly
	}
	if err := env.Open(path, flags, 0644); err != nil {
		b.releaseLock()
		return rerr.Wrapf(rerr.StorageIO, "opening mdbx env %s: %v", path, err)
	}

	run := env.Update
	if mode&hashkv.Writable == 0 {
		run = env.View
	}
	err = run(func(txn *mdbx.Txn) error {
		dbiFlags := uint(mdbx.DupSort)
		if mode&hashkv.Writable != 0 {
			dbiFlags |= mdbx.Create
		}
		dbi, err := txn.OpenDBI(tableName, dbiFlags, nil, nil)
		if err != nil {
			return err
		}
		b.dbi = dbi
		return nil
	})
	if err != nil {
		env.Close()
		b.releaseLock()
		return rerr.Wrapf(rerr.StorageIO, "opening table in %s: %v", path, err)
	}

	b.env = env
	b.path = path
	b.mode = mode
	b.open = true
	b.log.Debugf(rdflog.Hash, b.locator(), "opened backend mode=%v", mode)
	return nil
}

func (b *Backend) releaseLock() {
	if b.lock != nil {
		_ = b.lock.Unlock()
		b.lock = nil
	}
}

// Close implements hashkv.Backend.
func (b *Backend) Close() error {
	if !b.open {
		return nil
	}
	b.env.Close()
	b.releaseLock()
	b.open = false
	b.log.Debugf(rdflog.Hash, b.locator(), "closed backend")
	return nil
}

// Clone implements hashkv.Backend via a First+Next scan feeding Put,
// matching librdf_hash_tokyodb_clone's full-scan-and-reinsert approach.
func (b *Backend) Clone(dst hashkv.Backend) error {
	cur, err := b.NewCursor()
	if err != nil {
		return err
	}
	defer cur.Close()

	err = cur.First()
	for err == nil {
		k, v, cerr := cur.Current()
		if cerr != nil {
			return cerr
		}
		if perr := dst.Put(k, v); perr != nil {
			return rerr.Wrapf(rerr.StorageIO, "clone: put failed: %v", perr)
		}
		if nerr := cur.NextValueOfKey(); nerr == nil {
			continue
		}
		err = cur.NextKey()
	}
	if !rerr.Is(err, rerr.NotFound) {
		return err
	}
	return nil
}

// ValuesCount implements hashkv.Backend, matching the original's
// tcbdbrnum(db) call: a count of every (key, value) record in the
// table, not scoped to any one key.
func (b *Backend) ValuesCount() (int, error) {
	var stat *mdbx.Stat
	err := b.env.View(func(txn *mdbx.Txn) error {
		s, err := txn.Stat(b.dbi)
		if err != nil {
			return err
		}
		stat = s
		return nil
	})
	if err != nil {
		return 0, rerr.Wrapf(rerr.StorageIO, "counting all values: %v", err)
	}
	return int(stat.Entries), nil
}

// ValuesCountForKey implements hashkv.Backend.
func (b *Backend) ValuesCountForKey(key datum.Datum) (int, error) {
	count := 0
	err := b.env.View(func(txn *mdbx.Txn) error {
		cur, err := txn.OpenCursor(b.dbi)
		if err != nil {
			return err
		}
		defer cur.Close()

		_, _, err = cur.Get(key.Bytes, nil, mdbx.SetKey)
		if mdbx.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		count = 1
		for {
			_, _, err = cur.Get(nil, nil, mdbx.NextDup)
			if mdbx.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			count++
		}
	})
	if err != nil {
		return 0, rerr.Wrapf(rerr.StorageIO, "counting values for key: %v", err)
	}
	return count, nil
}

// Put implements hashkv.Backend. The values under one key form a
// DupSort set: putting a (key, value) pair that is already stored adds
// no second record, so ValuesCount counts distinct pairs.
func (b *Backend) Put(key, value datum.Datum) error {
	if b.mode&hashkv.Writable == 0 {
		return rerr.Wrapf(rerr.Invalid, "backend %s is read-only", b.locator())
	}
	err := b.env.Update(func(txn *mdbx.Txn) error {
		return txn.Put(b.dbi, key.Bytes, value.Bytes, 0)
	})
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "put: %v", err)
	}
	return nil
}

// Exists implements hashkv.Backend.
func (b *Backend) Exists(key, value datum.Datum) (bool, error) {
	found := false
	err := b.env.View(func(txn *mdbx.Txn) error {
		cur, err := txn.OpenCursor(b.dbi)
		if err != nil {
			return err
		}
		defer cur.Close()

		if value.IsZero() {
			_, _, err = cur.Get(key.Bytes, nil, mdbx.SetKey)
		} else {
			_, _, err = cur.Get(key.Bytes, value.Bytes, mdbx.GetBoth)
		}
		if mdbx.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, rerr.Wrapf(rerr.StorageIO, "exists: %v", err)
	}
	return found, nil
}

// DeleteKey implements hashkv.Backend.
func (b *Backend) DeleteKey(key datum.Datum) error {
	if b.mode&hashkv.Writable == 0 {
		return rerr.Wrapf(rerr.Invalid, "backend %s is read-only", b.locator())
	}
	err := b.env.Update(func(txn *mdbx.Txn) error {
		err := txn.Del(b.dbi, key.Bytes, nil)
		if mdbx.IsNotFound(err) {
			return nil
		}
		return err
	})
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "delete key: %v", err)
	}
	return nil
}

// DeleteKeyValue implements hashkv.Backend.
func (b *Backend) DeleteKeyValue(key, value datum.Datum) error {
	if b.mode&hashkv.Writable == 0 {
		return rerr.Wrapf(rerr.Invalid, "backend %s is read-only", b.locator())
	}
	var notFound bool
	err := b.env.Update(func(txn *mdbx.Txn) error {
		cur, err := txn.OpenCursor(b.dbi)
		if err != nil {
			return err
		}
		defer cur.Close()

		_, _, err = cur.Get(key.Bytes, value.Bytes, mdbx.GetBoth)
		if mdbx.IsNotFound(err) {
			notFound = true
			return nil
		}
		if err != nil {
			return err
		}
		return cur.Del(0)
	})
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "delete key/value: %v", err)
	}
	if notFound {
		return rerr.Wrapf(rerr.NotFound, "no such (key, value) pair")
	}
	return nil
}

// Sync implements hashkv.Backend.
func (b *Backend) Sync() error {
	if err := b.env.Sync(true, false); err != nil {
		return rerr.Wrapf(rerr.StorageIO, "sync: %v", err)
	}
	return nil
}

// NewCursor implements hashkv.Backend.
func (b *Backend) NewCursor() (hashkv.Cursor, error) {
	txn, err := b.env.BeginTxn(nil, mdbx.Readonly)
	if err != nil {
		return nil, rerr.Wrapf(rerr.StorageIO, "begin txn for cursor: %v", err)
	}
	cur, err := txn.OpenCursor(b.dbi)
	if err != nil {
		txn.Abort()
		return nil, rerr.Wrapf(rerr.StorageIO, "open cursor: %v", err)
	}
	return &cursor{txn: txn, cur: cur}, nil
}

// cursor implements hashkv.Cursor (C4) over a dedicated read-only
// transaction, matching librdf_hash_tokyodb_cursor_context's
// independent BDBCUR lifetime.
type cursor struct {
	txn        *mdbx.Txn
	cur        *mdbx.Cursor
	positioned bool
}

func (c *cursor) First() error {
	_, _, err := c.cur.Get(nil, nil, mdbx.First)
	if mdbx.IsNotFound(err) {
		c.positioned = false
		return rerr.Wrap(rerr.NotFound, "backend is empty")
	}
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "cursor first: %v", err)
	}
	c.positioned = true
	return nil
}

func (c *cursor) SeekKey(key datum.Datum) error {
	_, _, err := c.cur.Get(key.Bytes, nil, mdbx.SetKey)
	if mdbx.IsNotFound(err) {
		c.positioned = false
		return rerr.Wrap(rerr.NotFound, "no such key")
	}
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "cursor seek key: %v", err)
	}
	c.positioned = true
	return nil
}

func (c *cursor) NextKey() error {
	_, _, err := c.cur.Get(nil, nil, mdbx.NextNoDup)
	if mdbx.IsNotFound(err) {
		return rerr.Wrap(rerr.NotFound, "no further keys")
	}
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "cursor next key: %v", err)
	}
	return nil
}

func (c *cursor) NextValueOfKey() error {
	_, _, err := c.cur.Get(nil, nil, mdbx.NextDup)
	if mdbx.IsNotFound(err) {
		return rerr.Wrap(rerr.NotFound, "no further duplicates for this key")
	}
	if err != nil {
		return rerr.Wrapf(rerr.StorageIO, "cursor next value: %v", err)
	}
	return nil
}

func (c *cursor) Current() (datum.Datum, datum.Datum, error) {
	if !c.positioned {
		return datum.Datum{}, datum.Datum{}, rerr.Wrap(rerr.Invalid, "cursor is not positioned")
	}
	k, v, err := c.cur.Get(nil, nil, mdbx.GetCurrent)
	if err != nil {
		return datum.Datum{}, datum.Datum{}, rerr.Wrapf(rerr.StorageIO, "cursor current: %v", err)
	}
	return datum.New(k).Clone(), datum.New(v).Clone(), nil
}

func (c *cursor) DeleteCurrent() error {
	if !c.positioned {
		return rerr.Wrap(rerr.Invalid, "cursor is not positioned")
	}
	if err := c.cur.Del(0); err != nil {
		return rerr.Wrapf(rerr.StorageIO, "cursor delete current: %v", err)
	}
	return nil
}

func (c *cursor) Close() error {
	c.cur.Close()
	return c.txn.Abort()
}
