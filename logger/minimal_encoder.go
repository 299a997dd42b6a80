package logger

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the colors one theme uses.
type palette struct {
	fg        string
	time      string
	id        string
	number    string
	stage     string
	component []string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;108m",
	id:        "\x1b[38;5;109m",
	number:    "\x1b[38;5;175m",
	stage:     "\x1b[38;5;208m",
	component: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;107m",
	id:        "\x1b[38;5;109m",
	number:    "\x1b[38;5;108m",
	stage:     "\x1b[38;5;208m",
	component: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

var currentTheme = "everforest"

var bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// IsTheme reports whether theme names a known color scheme.
func IsTheme(theme string) bool {
	return theme == "everforest" || theme == "gruvbox"
}

// SetTheme configures the color scheme for log output
func SetTheme(theme string) {
	if IsTheme(theme) {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

func colorComponent(name string) string {
	// Hash for consistent color per component
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	choices := colors().component
	return choices[hash%len(choices)]
}

// colorizeMessage colors bracketed stage markers such as [exclude] and
// leaves the rest in the base text color.
func colorizeMessage(msg string) string {
	pal := colors()
	result := strings.Builder{}
	lastIndex := 0

	for _, match := range bracketPattern.FindAllStringIndex(msg, -1) {
		if before := msg[lastIndex:match[0]]; before != "" {
			result.WriteString(pal.fg + before + colorReset)
		}
		result.WriteString(pal.stage + msg[match[0]:match[1]] + colorReset)
		lastIndex = match[1]
	}

	if remaining := msg[lastIndex:]; remaining != "" {
		result.WriteString(pal.fg + remaining + colorReset)
	}

	return result.String()
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  trim  [percentile] Pruned  (1200 nodes, 3400 edges) removed=88"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()
	pal := colors()

	final.AppendString(pal.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for WARN and above
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  DEBUG")
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorizeMessage(ent.Message))

	if len(fields) > 0 {
		if values := extractFieldValues(fields); values != "" {
			final.AppendString("  ")
			final.AppendString(values)
		}
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	pal := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + pal.warnBg + pal.warn + "WARN" + colorReset
	default:
		return colorBold + pal.errBg + pal.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: trim.percentile -> t.percentile
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue renders a zap field value without its key.
func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", uint64(field.Integer))
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok && err != nil {
			return err.Error()
		}
		return ""
	}

	// Everything else (floats, durations, arrays, reflected values) goes
	// through a throwaway map encoder so nothing is dropped.
	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)
	if v, ok := m.Fields[field.Key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// extractFieldValues renders structured fields compactly.
// Input: {"run_id": "9b1c", "nodes": 19, "edges": 23, "removed": 4}
// Output: "9b1c (19 nodes, 23 edges) removed=4"
func extractFieldValues(fields []zapcore.Field) string {
	pal := colors()
	var values []string
	var rest []string
	var nodeCount, edgeCount string

	for _, field := range fields {
		val := getFieldValue(field)
		switch field.Key {
		case FieldRunID:
			if val != "" {
				values = append(values, pal.id+val+colorReset)
			}
		case FieldNodes:
			nodeCount = val
		case FieldEdges:
			edgeCount = val
		case FieldDurationMS:
			if val != "" {
				values = append(values, pal.number+val+colorReset+"ms")
			}
		default:
			if field.Key == "" || (field.Type == zapcore.ErrorType && val == "") {
				continue
			}
			rest = append(rest, field.Key+"="+val)
		}
	}

	switch {
	case nodeCount != "" && edgeCount != "":
		values = append(values, pal.fg+"("+pal.number+nodeCount+colorReset+pal.fg+" nodes, "+
			pal.number+edgeCount+colorReset+pal.fg+" edges)"+colorReset)
	case nodeCount != "":
		rest = append(rest, FieldNodes+"="+nodeCount)
	case edgeCount != "":
		rest = append(rest, FieldEdges+"="+edgeCount)
	}

	sort.Strings(rest)
	values = append(values, rest...)
	return strings.Join(values, " ")
}
