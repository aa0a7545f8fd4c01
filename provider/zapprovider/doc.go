// Package zapprovider forwards accepted records into a zap core, so
// applications that already ship zap output can route slogger loggers into
// the same pipeline.
//
// The record's logger name becomes the zap logger name and its timestamp
// is preserved. EXCEPTION records are written at zap's error level with a
// level_name field set to "EXCEPTION".
package zapprovider
