package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Summarize renders a raw tool response as a compact human-readable string
// for the UI layer. Blocks are rendered one line each and joined with
// newlines; a single-block response reduces to its bare line. Input that
// does not parse into the expected block-array shape (including an empty
// content array) falls back to a pretty-printed, fenced JSON rendering of
// the raw payload. Summarize never fails.
func Summarize(raw json.RawMessage) string {
	target := raw

	// Accept either a bare content array or a response envelope.
	var envelope struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Content) > 0 {
		target = envelope.Content
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(target, &blocks); err != nil || len(blocks) == 0 {
		return fencedJSON(target)
	}

	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		lines = append(lines, summarizeBlock(block))
	}
	return strings.Join(lines, "\n")
}

// summarizeBlock renders one content block as a single display string,
// mirroring the transformer's per-block dispatch.
func summarizeBlock(block ContentBlock) string {
	switch kind := block.Kind(); kind {
	case "text":
		text, _ := block.String("text")
		return text

	case "image", "audio", "video":
		mime, ok := block.String("mimeType")
		if !ok || mime == "" {
			mime = "unknown"
		}
		return fmt.Sprintf("[%s: %s]", strings.ToUpper(kind[:1])+kind[1:], mime)

	case "pdf":
		return "[PDF document]"

	case "resource":
		res, _ := block.Object("resource")
		if text, ok := res.String("text"); ok {
			return text
		}
		mime, ok := res.String("mimeType")
		if !ok || mime == "" {
			mime = "unknown type"
		}
		return fmt.Sprintf("[Embedded Resource: %s]", mime)

	case "resource_link":
		uri, _ := block.String("uri")
		label, ok := block.String("title")
		if !ok || label == "" {
			label, _ = block.String("name")
		}
		return fmt.Sprintf("[Link to %s: %s]", label, uri)

	default:
		if kind == "" {
			if text, ok := block.String("text"); ok {
				if embedded, ok := parseEmbeddedBlock(text); ok {
					return summarizeBlock(embedded)
				}
				return text
			}
		}
		return fmt.Sprintf("[Unknown content type: %s]", kind)
	}
}

// fencedJSON pretty-prints raw JSON inside a markdown code fence. Payloads
// that are not valid JSON are fenced as-is.
func fencedJSON(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		if pretty, err := json.MarshalIndent(v, "", "  "); err == nil {
			return "```json\n" + string(pretty) + "\n```"
		}
	}
	return "```json\n" + string(raw) + "\n```"
}
