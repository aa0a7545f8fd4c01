package formatter

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/philipp01105/slogger/core"
)

// dumper renders arbitrary values deterministically
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// RenderPayload renders a record payload. Errors render with their stack,
// scalars render as their literal value, anything else goes through fn or,
// when fn is nil, a structured dump.
func RenderPayload(payload any, fn PayloadFunc) string {
	if payload == nil {
		return ""
	}
	if err, ok := payload.(error); ok {
		return RenderError(err)
	}
	if s, ok := scalar(payload); ok {
		return s
	}
	if fn != nil {
		return fn(payload)
	}
	return Dump(payload)
}

// Dump renders v as an indented structure without a trailing newline
func Dump(v any) string {
	return strings.TrimRight(dumper.Sdump(v), "\n")
}

// RenderError renders an error as "<message> in <file> [<line>]" followed
// by one tab-indented line per caller frame. Errors without a captured
// stack render as their message. A nil error, typed or not, renders as
// "<nil>".
func RenderError(err error) string {
	if isNil(err) {
		return NilError
	}
	frames := core.StackOf(err)
	if len(frames) == 0 {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString(" in ")
	b.WriteString(frames[0].File)
	b.WriteString(" [")
	b.WriteString(strconv.Itoa(frames[0].Line))
	b.WriteByte(']')

	for _, f := range frames[1:] {
		owner, sep, fn := f.Symbol()
		b.WriteString("\n\tin ")
		b.WriteString(f.File)
		b.WriteByte(' ')
		b.WriteString(owner)
		b.WriteString(sep)
		b.WriteString(fn)
		b.WriteString("() [")
		b.WriteString(strconv.Itoa(f.Line))
		b.WriteByte(']')
	}
	return b.String()
}

// NilError is the rendering of a nil error payload
const NilError = "<nil>"

// isNil reports whether err is nil or wraps a nil pointer-like value, whose
// methods would dereference nil.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	rv := reflect.ValueOf(err)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func scalar(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	default:
		return "", false
	}
}
