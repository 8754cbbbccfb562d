package mcp

import (
	"fmt"

	"github.com/luccasparoni/gemini-cli/pkg/api"
)

const (
	invalidMediaText   = "[Invalid media: missing data or mimeType]"
	defaultBlobMIME    = "application/octet-stream"
	unknownErrorText   = "Unknown error"
	responseHeaderText = "[Response from %s (%s MCP Server)]"
)

// Transform converts a single tool response envelope into canonical output
// parts. The boolean result reports whether any block yielded content; when
// it is false the caller must pass the original raw response through
// unchanged instead of the (empty) part list.
func Transform(toolName, serverName string, resp *ToolResponse) ([]api.Part, bool) {
	return TransformAll(toolName, serverName, []*ToolResponse{resp})
}

// TransformAll converts an ordered sequence of response envelopes. Part
// ordering mirrors block ordering. Each envelope that produced at least one
// media or binary part gets a single informational header inserted before
// its parts; envelopes with only text parts get none. The content flag is
// accumulated across the whole sequence and checked exactly once here, so
// the fallback decision is always made for the response as a whole.
func TransformAll(toolName, serverName string, resps []*ToolResponse) ([]api.Part, bool) {
	var parts []api.Part
	transformed := false

	for _, resp := range resps {
		if resp == nil {
			continue
		}

		// An error-flagged envelope short-circuits block processing and
		// reports exactly one clearly-labeled error part.
		if resp.IsError {
			msg := unknownErrorText
			if text, ok := firstText(resp.Content); ok {
				msg = text
			}
			parts = append(parts, api.TextPart(fmt.Sprintf("Error from %s: %s", toolName, msg)))
			transformed = true
			continue
		}

		var local []api.Part
		binary := false
		for _, block := range resp.Content {
			blockParts, blockBinary := transformBlock(toolName, block)
			if len(blockParts) > 0 {
				transformed = true
			}
			binary = binary || blockBinary
			local = append(local, blockParts...)
		}

		if binary {
			header := api.TextPart(fmt.Sprintf(responseHeaderText, toolName, serverName))
			local = append([]api.Part{header}, local...)
		}
		parts = append(parts, local...)
	}

	if !transformed {
		return nil, false
	}
	return parts, true
}

// transformBlock converts one content block. binary reports whether the
// block contributed inline binary data, which drives the envelope header.
// Every arm produces at least one part; malformed blocks degrade to
// deterministic placeholders rather than failing.
func transformBlock(toolName string, block ContentBlock) (parts []api.Part, binary bool) {
	switch kind := block.Kind(); kind {
	case "text":
		text, _ := block.String("text")
		return []api.Part{api.TextPart(text)}, false

	case "image", "audio", "video", "pdf":
		data, okData := block.String("data")
		mime, okMime := block.String("mimeType")
		if !okData || !okMime {
			return []api.Part{api.TextPart(invalidMediaText)}, false
		}
		return []api.Part{api.DataPart(mime, data)}, true

	case "resource":
		return transformResource(toolName, block)

	case "resource_link":
		uri, _ := block.String("uri")
		label, ok := block.String("title")
		if !ok || label == "" {
			label, _ = block.String("name")
		}
		return []api.Part{api.TextPart(fmt.Sprintf("Resource Link: %s at %s", label, uri))}, false

	default:
		// Legacy blocks have no discriminator but carry a text field that
		// may itself be a JSON-encoded block.
		if kind == "" {
			if text, ok := block.String("text"); ok {
				if embedded, ok := parseEmbeddedBlock(text); ok {
					return transformBlock(toolName, embedded)
				}
				return []api.Part{api.TextPart(text)}, false
			}
		}
		return []api.Part{api.TextPart(fmt.Sprintf("[Unknown content type: %s]", kind))}, false
	}
}

// transformResource handles embedded resource blocks: literal text when
// present, otherwise blob data with a defaulted mime type, otherwise the
// bare URI.
func transformResource(toolName string, block ContentBlock) (parts []api.Part, binary bool) {
	res, _ := block.Object("resource")
	uri, _ := res.String("uri")

	if text, ok := res.String("text"); ok {
		return []api.Part{api.TextPart(fmt.Sprintf("[Resource: %s]\n%s", uri, text))}, false
	}

	if blob, ok := res.String("blob"); ok {
		mime, ok := res.String("mimeType")
		if !ok || mime == "" {
			mime = defaultBlobMIME
		}
		info := fmt.Sprintf("[Tool %q provided the following embedded resource with mime-type: %s]", toolName, mime)
		return []api.Part{api.TextPart(info), api.DataPart(mime, blob)}, true
	}

	return []api.Part{api.TextPart(fmt.Sprintf("[Resource: %s]", uri))}, false
}

// firstText returns the first block-level literal text in the sequence.
func firstText(blocks []ContentBlock) (string, bool) {
	for _, block := range blocks {
		if text, ok := block.String("text"); ok {
			return text, true
		}
	}
	return "", false
}
