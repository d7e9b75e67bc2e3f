// Package archive is the export/import subsystem: it snapshots a whole
// engine store and restores it later, attaching semantic content-type hints
// to bracket-pattern keys along the way.
//
// Two formats are supported. The SQLite archive keeps many snapshots in one
// database file and is the durable form. The flat snapshot is a single
// gzip-compressed canonical JSON document with an xxh3 integrity checksum,
// suitable for piping and diffing.
//
// Archives are a collaborator of the engine, not part of it: the engine
// performs no I/O itself.
package archive
