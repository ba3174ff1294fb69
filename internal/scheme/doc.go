// Package scheme decodes the records of a legacy settings stream.
//
// Every tag has exactly one wire layout. Decode reads a record's fields
// through a qstream.Cursor and checks them; Apply then commits the record
// to a state.Sink or to the migration Context. Because the stream carries
// no per-record length, a record that fails to decode leaves the rest of
// the stream unreadable, and an unknown tag is an error rather than
// something to skip.
//
// Some tags are superseded layouts that are still read to keep the stream
// aligned but whose values are dropped; see Tag.Discarded.
//
// Values that only make sense together are collected in a Context and
// folded into a fallback mtp.Config by Materialize after the last record.
package scheme
