// Package fileprovider provides the file sink: an append-only UTF-8 text
// file with one record per line.
//
// Records that span several physical lines, such as error stack traces,
// are still written with a single append. Each append holds the provider
// mutex and, on unix, an exclusive flock, so concurrent writers in this or
// other processes never interleave mid-record.
//
// Setting maxSize (megabytes) hands the file to lumberjack for size based
// rotation with maxBackups, maxAge (days) and compress. Rotated files are
// only serialized in-process.
package fileprovider
