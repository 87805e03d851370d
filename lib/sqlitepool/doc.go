// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens SQLite connection pools for Lightbox's
// local catalogs.
//
// It wraps zombiezen.com/go/sqlite's sqlitex.Pool. Every connection
// gets the same pragmas and, optionally, a schema script. A Path of
// ":memory:" opens a private in-memory database; such a pool always
// holds exactly one connection, since every in-memory connection is a
// separate database.
//
// Callers either Take and Put connections themselves or hand a
// function to [Pool.With]:
//
//	err := pool.With(ctx, func(conn *sqlite.Conn) error {
//	    return sqlitex.Execute(conn, "SELECT count(*) FROM photos", &sqlitex.ExecOptions{
//	        ResultFunc: func(stmt *sqlite.Stmt) error {
//	            count = stmt.ColumnInt(0)
//	            return nil
//	        },
//	    })
//	})
//
// Connections are not safe for concurrent use.
package sqlitepool
