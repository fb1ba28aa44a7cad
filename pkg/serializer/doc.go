// Package serializer renders swnetcfg output (interface inventories and run
// reports) as JSON, YAML or a flattened FIELD/VALUE table.
//
// # Usage
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	if err != nil {
//	    return err
//	}
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	return w.Serialize(ctx, report)
//
// An empty path or "-" writes to stdout. Unknown formats fall back to JSON.
package serializer
