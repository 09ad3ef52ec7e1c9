package restmachinery

import (
	"encoding/json"

	"github.com/pkg/errors"

	"portfolio-gateway/sdk/meta"
)

// NormalizeBody returns the payload portion of an API response body. The
// backend is inconsistent about response shapes: most endpoints wrap payloads
// in a {success, message, data} envelope, while a few return the payload
// raw. Recognizably enveloped bodies are unwrapped-- a false success becomes
// an error carrying the envelope's message-- and anything else passes through
// untouched.
func NormalizeBody(bodyBytes []byte) ([]byte, error) {
	var envelope struct {
		Success *bool           `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil ||
		envelope.Success == nil {
		// Not an envelope. Raw payloads (including bare arrays, which don't
		// even unmarshal into the struct above) pass through.
		return bodyBytes, nil
	}
	if !*envelope.Success {
		if envelope.Message == "" {
			envelope.Message = "API request failed"
		}
		return nil, errors.New(envelope.Message)
	}
	return envelope.Data, nil
}

// NormalizeList returns the items and page metadata of a list payload. List
// payloads arrive either as a bare JSON array or as a paginated object; a
// bare array is normalized to a single page containing everything.
func NormalizeList(
	payloadBytes []byte,
) (json.RawMessage, meta.Paginated, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(payloadBytes, &rawItems); err == nil {
		return payloadBytes, meta.Paginated{
			Page:       1,
			PageSize:   len(rawItems),
			Total:      len(rawItems),
			TotalPages: 1,
		}, nil
	}
	paginated := struct {
		meta.Paginated `json:",inline"`
		Items          json.RawMessage `json:"items"`
	}{}
	if err := json.Unmarshal(payloadBytes, &paginated); err != nil {
		return nil, meta.Paginated{},
			errors.Wrap(err, "error unmarshaling list payload")
	}
	items := paginated.Items
	if items == nil {
		items = json.RawMessage("[]")
	}
	var itemCount int
	countItems := []json.RawMessage{}
	if err := json.Unmarshal(items, &countItems); err == nil {
		itemCount = len(countItems)
	}
	pagination := paginated.Paginated
	if pagination.Page == 0 {
		pagination.Page = 1
	}
	if pagination.PageSize == 0 {
		pagination.PageSize = itemCount
	}
	if pagination.Total == 0 {
		pagination.Total = itemCount
	}
	if pagination.TotalPages == 0 {
		pagination.TotalPages = 1
	}
	return items, pagination, nil
}
