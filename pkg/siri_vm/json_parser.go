package siri_vm

import (
	"encoding/json"
	"io"
)

func ParseJSON(body []byte) (*Document, error) {
	document := Document{}

	if err := json.Unmarshal(body, &document); err != nil {
		return nil, err
	}
	document.raw = json.RawMessage(body)

	return &document, nil
}

func ParseJSONFile(reader io.Reader) (*Document, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return ParseJSON(body)
}
