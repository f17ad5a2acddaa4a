package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// DecodeFile parses an uploaded backup. Only .json files are accepted; anything else
// is refused before parsing so the user gets a file-type message, not a parse error.
func DecodeFile(name string, data []byte) (any, error) {
	if ext := strings.ToLower(filepath.Ext(name)); ext != ".json" {
		if ext == "" {
			ext = "no extension"
		}
		return nil, importErr(UnsupportedFileType, fmt.Errorf("%s (%s)", filepath.Base(name), ext))
	}
	return Decode(data)
}

// Decode parses raw JSON into a generic document.
func Decode(data []byte) (any, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, importErr(Unparseable, err)
	}
	return doc, nil
}
