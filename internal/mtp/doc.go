// Package mtp holds the network-configuration values recovered from legacy
// settings: data-center endpoints, proxies, authorization keys and the
// fallback client configuration.
//
// The package only models these values and their serialized forms. It
// does not open connections.
package mtp
