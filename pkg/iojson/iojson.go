// Package iojson reads and writes JSON for command line output: indented
// documents for people, single lines for tools.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// marshalFailure is the JSON written to the error stream when a value
// cannot be encoded. It indicates a bug, not bad input.
func marshalFailure(err error) string {
	msg, _ := json.Marshal(err.Error())
	return fmt.Sprintf(`{"message":"error marshaling output","data":{"json_error":%s}}`, msg)
}

// WriteWith writes obj to w as indented JSON. Encoding failures are reported
// on ew as a JSON error document.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(ew, marshalFailure(err))
		return werr
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as a single compact JSON line, suited to JSON lines
// output that other tools stream.
func WriteLine(w io.Writer, obj any) error {
	return json.NewEncoder(w).Encode(obj)
}
