package logger

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
	colorDim   = "\x1b[2m"
	colorRed   = "\x1b[31m"
	colorYel   = "\x1b[33m"
	colorCyan  = "\x1b[36m"
)

var pool = buffer.NewPool()

// minimalEncoder implements a compact console encoder.
// Format: "13:04:35  WARN  driver  wrote file  path=out/rust/schema.rs"
//
// Context fields added with With are kept in a map encoder and printed
// sorted by key before the entry's own fields, which keep call order.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder(), color: color}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := pool.Get()

	final.AppendString(enc.paint(colorDim, ent.Time.Format("15:04:05")))

	// Info is the common case and carries no level tag
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.paint(levelColor(ent.Level), ent.Level.CapitalString()))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorCyan, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	pairs := enc.contextPairs()
	pairs = append(pairs, entryPairs(fields)...)
	if len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color || color == "" {
		return s
	}
	return color + s + colorReset
}

func levelColor(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return colorDim
	case zapcore.WarnLevel:
		return colorBold + colorYel
	case zapcore.InfoLevel:
		return ""
	default:
		return colorBold + colorRed
	}
}

func (enc *minimalEncoder) contextPairs() []string {
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+formatValue(enc.Fields[k]))
	}
	return pairs
}

// entryPairs renders fields as key=value in order. Every field is printed,
// whatever its type; the verbose stack trace zap adds next to errors is not.
func entryPairs(fields []zapcore.Field) []string {
	pairs := make([]string, 0, len(fields))
	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		if f.Type == zapcore.ErrorType {
			delete(m.Fields, f.Key+"Verbose")
		}
		keys := make([]string, 0, len(m.Fields))
		for k := range m.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pairs = append(pairs, k+"="+formatValue(m.Fields[k]))
		}
	}
	return pairs
}

func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}
