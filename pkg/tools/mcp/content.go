package mcp

import "encoding/json"

// ToolResponse is the lenient decoding of a tool server's call result.
// Content blocks stay loosely typed so that blocks the typed protocol
// union cannot represent (pdf, legacy wrappers, unknown tags) survive
// decoding and reach the transformer.
type ToolResponse struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError"`
}

// ContentBlock is one unit of a tool response payload. It is a raw JSON
// object; accessors return (value, ok) so callers never perform unchecked
// field or type assertions on wire data.
type ContentBlock map[string]any

// Kind returns the block's type discriminator, or "" when the field is
// missing or not a string.
func (b ContentBlock) Kind() string {
	kind, _ := b.String("type")
	return kind
}

// String returns the string value under key. ok is false when the key is
// absent or holds a non-string value (including JSON null).
func (b ContentBlock) String(key string) (value string, ok bool) {
	value, ok = b[key].(string)
	return value, ok
}

// Object returns the nested object under key as a ContentBlock.
func (b ContentBlock) Object(key string) (ContentBlock, bool) {
	obj, ok := b[key].(map[string]any)
	return ContentBlock(obj), ok
}

// DecodeResponse parses raw response JSON into a ToolResponse. An error
// means the payload does not have the expected envelope shape at all
// (callers then use the whole-response fallback).
func DecodeResponse(raw json.RawMessage) (*ToolResponse, error) {
	var resp ToolResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// parseEmbeddedBlock attempts to interpret a legacy text payload as a
// JSON-encoded content block. Only JSON objects qualify; scalars and
// arrays are reported as a parse failure so the caller treats the payload
// as literal text.
func parseEmbeddedBlock(text string) (ContentBlock, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	return ContentBlock(obj), true
}
