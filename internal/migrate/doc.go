// Package migrate drives a legacy settings stream through the record
// decoders.
//
// An Engine reads one record at a time, applies it to its sink and, once
// the stream is exhausted, materializes the fallback network
// configuration. Inspect performs the same walk without applying anything.
package migrate
