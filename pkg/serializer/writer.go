package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// StdoutURI is the special path indicating output should be written to stdout.
const StdoutURI = "-"

// Format is an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns the supported format names.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// FormatFromPath infers the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".txt", ".table":
		return FormatTable
	default:
		return FormatYAML
	}
}

// Serializer writes a value in some format.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer releases the underlying output.
type Closer interface {
	Close() error
}

// Writer serializes values to an io.Writer.
type Writer struct {
	format Format
	out    io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for format on out. Unknown formats fall back
// to JSON; a nil out means stdout.
func NewWriter(format Format, out io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Debug("unknown output format, defaulting to json", slog.String("format", string(format)))
		format = FormatJSON
	}
	if out == nil {
		out = os.Stdout
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter returns a Writer on stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer on path, or on stdout when path is
// empty or "-".
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Close closes the underlying file, if any. It is safe to call repeatedly.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes v in the Writer's format.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return w.serializeTable(v)
	default:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

type row struct {
	key   string
	value string
}

func (w *Writer) serializeTable(v any) error {
	rows := flatten("", reflect.ValueOf(v), nil)

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.key, r.value)
	}
	return tw.Flush()
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if strings.HasPrefix(key, "[") {
		return prefix + key
	}
	return prefix + "." + key
}

// flatten turns nested structs, maps and slices into dotted key rows.
func flatten(prefix string, v reflect.Value, rows []row) []row {
	if !v.IsValid() {
		return append(rows, row{key: prefix, value: "<nil>"})
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		if (v.Kind() != reflect.Ptr && v.Kind() != reflect.Interface) || !v.IsNil() {
			return append(rows, row{key: prefix, value: s.String()})
		}
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return append(rows, row{key: prefix, value: "<nil>"})
		}
		return flatten(prefix, v.Elem(), rows)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			rows = flatten(join(prefix, t.Field(i).Name), v.Field(i), rows)
		}
		return rows
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			rows = flatten(join(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), rows)
		}
		return rows
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			rows = flatten(join(prefix, fmt.Sprintf("[%d]", i)), v.Index(i), rows)
		}
		return rows
	default:
		return append(rows, row{key: prefix, value: fmt.Sprint(v.Interface())})
	}
}
