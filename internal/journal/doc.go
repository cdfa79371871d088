// Package journal persists verification history in a local SQLite
// database so past runs can be reviewed without re-contacting the
// tracker. Writes are serialized across processes with a lock file
// next to the database.
package journal
