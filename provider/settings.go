package provider

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/formatter"
)

// Recognized settings keys shared by every provider
const (
	KeyEnabled    = "enabled"
	KeyLevel      = "level"
	KeyTarget     = "target"
	KeyFormatter  = "formatter"
	KeyDateFormat = "dateFormat"
	KeyFormat     = "format"
)

// Settings is the configuration mapping of a logger. Missing or malformed
// values silently take their documented defaults.
type Settings map[string]any

// Defaults returns the settings every logger starts from
func Defaults() Settings {
	return Settings{
		KeyEnabled:    false,
		KeyLevel:      core.ErrorLevel,
		KeyFormatter:  nil,
		KeyDateFormat: formatter.DefaultDateFormat,
	}
}

// Merge layers settings left to right; later layers win key by key
func Merge(layers ...Settings) Settings {
	out := Settings{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// Clone returns a shallow copy of s
func (s Settings) Clone() Settings {
	return Merge(s)
}

// Bool returns the value at key coerced to bool, or def
func (s Settings) Bool(key string, def bool) bool {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// String returns the value at key coerced to string, or def when absent,
// empty or not representable as a string
func (s Settings) String(key, def string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	str, err := cast.ToStringE(v)
	if err != nil || str == "" {
		return def
	}
	return str
}

// Int returns the value at key coerced to int, or def
func (s Settings) Int(key string, def int) int {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// Millis returns an integer millisecond value at key as a duration, or def.
// time.Duration values are used as is.
func (s Settings) Millis(key string, def time.Duration) time.Duration {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	if d, ok := v.(time.Duration); ok {
		return d
	}
	n, err := cast.ToInt64E(v)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Millisecond
}

// Map returns the mapping at key as Settings, or an empty Settings
func (s Settings) Map(key string) Settings {
	v, ok := s[key]
	if !ok || v == nil {
		return Settings{}
	}
	if m, ok := v.(Settings); ok {
		return m
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return Settings{}
	}
	return Settings(m)
}

// Enabled reports the enabled flag (default false)
func (s Settings) Enabled() bool {
	return s.Bool(KeyEnabled, false)
}

// Level returns the configured threshold. It accepts a core.Level, an
// integer or a level name; anything else, including EXCEPTION, yields ERROR.
func (s Settings) Level() core.Level {
	v, ok := s[KeyLevel]
	if !ok || v == nil {
		return core.ErrorLevel
	}

	var level core.Level
	switch x := v.(type) {
	case core.Level:
		level = x
	case bool:
		return core.ErrorLevel
	case string:
		parsed, err := core.ParseLevel(x)
		if err != nil {
			return core.ErrorLevel
		}
		level = parsed
	default:
		n, err := cast.ToIntE(v)
		if err != nil {
			return core.ErrorLevel
		}
		level = core.Level(n)
	}

	if !level.Threshold() {
		return core.ErrorLevel
	}
	return level
}

// DateFormat returns the configured Go time layout
func (s Settings) DateFormat() string {
	return s.String(KeyDateFormat, formatter.DefaultDateFormat)
}

// Formatter returns the payload callback, or nil when none is configured
func (s Settings) Formatter() formatter.PayloadFunc {
	switch fn := s[KeyFormatter].(type) {
	case formatter.PayloadFunc:
		return fn
	case func(any) string:
		return fn
	default:
		return nil
	}
}

// FormatterConfig builds the formatter configuration these settings describe
func (s Settings) FormatterConfig() formatter.Config {
	return formatter.Config{
		DateFormat: s.DateFormat(),
		Payload:    s.Formatter(),
	}
}

// Canonical returns the canonical serialization of a provider kind and its
// settings: JSON with sorted keys, functions replaced by their runtime name.
// Two configurations are equal iff their canonical forms are byte-identical.
func Canonical(kind string, s Settings) []byte {
	doc := map[string]any{
		"provider": strings.ToLower(kind),
		"settings": normalize(map[string]any(s)),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		// normalize only leaves JSON-safe values behind
		return []byte(fmt.Sprintf("%#v", doc))
	}
	return b
}

// Checksum fingerprints a configuration. It is an equality check, not a
// security boundary.
func Checksum(kind string, s Settings) string {
	sum := sha256.Sum256(Canonical(kind, s))
	return hex.EncodeToString(sum[:])
}

func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool:
		return x
	case core.Level:
		return int(x)
	case time.Duration:
		return x.String()
	case Settings:
		return normalize(map[string]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if rv.IsNil() {
			return nil
		}
		if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
			return "func:" + fn.Name()
		}
		return "func:?"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}

	if b, err := json.Marshal(v); err == nil {
		return json.RawMessage(b)
	}
	return fmt.Sprintf("%#v", v)
}
