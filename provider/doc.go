// Package provider defines the contract every log sink satisfies and the
// settings mapping sinks are built from.
//
// A Factory turns a logger name and its resolved Settings into a Provider.
// When the sink's resource cannot be prepared (a directory that cannot be
// created, a database that cannot be reached) the factory returns an
// *InitError; the registry caches nothing in that case, so the next lookup
// retries from scratch.
//
// Provider.Write renders and persists a single record. Errors it returns
// are absorbed by the logger: logging never becomes the cause of an
// application fault.
//
// Settings is a plain map so that "absent" and "zero" stay distinguishable
// while defaults are merged. Typed accessors coerce values with spf13/cast
// and fall back to the documented default for anything malformed.
//
// Built-in sinks live in sub-packages:
//
//   - fileprovider appends text or JSON lines to a file, one locked append per record.
//   - consoleprovider writes to stdout or stderr, optionally with coloured levels.
//   - mongoprovider inserts one document per record into a MongoDB collection.
//   - zapprovider forwards records into a zap core.
package provider
