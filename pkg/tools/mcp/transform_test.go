package mcp

import (
	"reflect"
	"testing"

	"github.com/luccasparoni/gemini-cli/pkg/api"
)

func block(kv ...any) ContentBlock {
	b := make(ContentBlock, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		b[kv[i].(string)] = kv[i+1]
	}
	return b
}

func resource(kv ...any) ContentBlock {
	return block("type", "resource", "resource", map[string]any(block(kv...)))
}

func TestTransform_TextBlocks(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		block("type", "text", "text", "first"),
		block("type", "text", "text", "second"),
	}}

	parts, ok := Transform("my_tool", "srv", resp)
	if !ok {
		t.Fatal("expected transformation to occur")
	}

	want := []api.Part{api.TextPart("first"), api.TextPart("second")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_ImageGetsHeader(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		block("type", "image", "data", "AAA", "mimeType", "image/png"),
	}}

	parts, ok := Transform("t", "s", resp)
	if !ok {
		t.Fatal("expected transformation to occur")
	}

	want := []api.Part{
		api.TextPart("[Response from t (s MCP Server)]"),
		api.DataPart("image/png", "AAA"),
	}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_MixedTextAndMedia(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		block("type", "text", "text", "caption"),
		block("type", "pdf", "data", "UERG", "mimeType", "application/pdf"),
	}}

	parts, ok := Transform("t", "s", resp)
	if !ok {
		t.Fatal("expected transformation to occur")
	}

	// One header for the whole envelope, inserted before its parts.
	want := []api.Part{
		api.TextPart("[Response from t (s MCP Server)]"),
		api.TextPart("caption"),
		api.DataPart("application/pdf", "UERG"),
	}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransformAll_HeaderOnlyOnBinaryEnvelope(t *testing.T) {
	textOnly := &ToolResponse{Content: []ContentBlock{
		block("type", "text", "text", "plain"),
	}}
	withMedia := &ToolResponse{Content: []ContentBlock{
		block("type", "image", "data", "AAA", "mimeType", "image/png"),
	}}

	parts, ok := TransformAll("t", "s", []*ToolResponse{textOnly, withMedia})
	if !ok {
		t.Fatal("expected transformation to occur")
	}

	want := []api.Part{
		api.TextPart("plain"),
		api.TextPart("[Response from t (s MCP Server)]"),
		api.DataPart("image/png", "AAA"),
	}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_InvalidMedia(t *testing.T) {
	tests := []struct {
		name  string
		block ContentBlock
	}{
		{"missing data", block("type", "image", "mimeType", "image/png")},
		{"missing mimeType", block("type", "video", "data", "AAA")},
		{"null mimeType", block("type", "image", "data", "AAA", "mimeType", nil)},
		{"non-string data", block("type", "audio", "data", 42, "mimeType", "audio/mp3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, ok := Transform("t", "s", &ToolResponse{Content: []ContentBlock{tt.block}})
			if !ok {
				t.Fatal("expected transformation to occur")
			}
			want := []api.Part{api.TextPart("[Invalid media: missing data or mimeType]")}
			if !reflect.DeepEqual(parts, want) {
				t.Errorf("parts = %+v, want %+v", parts, want)
			}
		})
	}
}

func TestTransform_ErrorResponse(t *testing.T) {
	resp := &ToolResponse{
		IsError: true,
		Content: []ContentBlock{
			block("type", "text", "text", "not found"),
			block("type", "text", "text", "ignored"),
		},
	}

	parts, ok := Transform("lookup", "s", resp)
	if !ok {
		t.Fatal("expected transformation to occur")
	}

	want := []api.Part{api.TextPart("Error from lookup: not found")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_ErrorResponseWithoutText(t *testing.T) {
	resp := &ToolResponse{
		IsError: true,
		Content: []ContentBlock{block("type", "image", "data", "AAA", "mimeType", "image/png")},
	}

	parts, _ := Transform("lookup", "s", resp)
	want := []api.Part{api.TextPart("Error from lookup: Unknown error")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_EmptyContentFallsBack(t *testing.T) {
	parts, ok := Transform("t", "s", &ToolResponse{Content: []ContentBlock{}})
	if ok {
		t.Errorf("expected fallback, got parts %+v", parts)
	}
	if parts != nil {
		t.Errorf("expected nil parts on fallback, got %+v", parts)
	}
}

func TestTransform_NilResponseFallsBack(t *testing.T) {
	if _, ok := Transform("t", "s", nil); ok {
		t.Error("expected fallback for nil response")
	}
}

func TestTransform_ResourceWithText(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		resource("uri", "file:///notes.txt", "text", "hello"),
	}}

	parts, _ := Transform("t", "s", resp)
	want := []api.Part{api.TextPart("[Resource: file:///notes.txt]\nhello")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_ResourceWithBlob(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		resource("uri", "file:///a.bin", "blob", "QkxPQg=="),
	}}

	parts, _ := Transform("t", "s", resp)
	want := []api.Part{
		api.TextPart("[Response from t (s MCP Server)]"),
		api.TextPart(`[Tool "t" provided the following embedded resource with mime-type: application/octet-stream]`),
		api.DataPart("application/octet-stream", "QkxPQg=="),
	}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_ResourceURIOnly(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		resource("uri", "file:///only.txt"),
	}}

	parts, _ := Transform("t", "s", resp)
	want := []api.Part{api.TextPart("[Resource: file:///only.txt]")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_ResourceLink(t *testing.T) {
	tests := []struct {
		name  string
		block ContentBlock
		want  string
	}{
		{
			name:  "title preferred",
			block: block("type", "resource_link", "uri", "file:///a", "title", "Doc", "name", "a"),
			want:  "Resource Link: Doc at file:///a",
		},
		{
			name:  "name when no title",
			block: block("type", "resource_link", "uri", "file:///a", "name", "a"),
			want:  "Resource Link: a at file:///a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, _ := Transform("t", "s", &ToolResponse{Content: []ContentBlock{tt.block}})
			want := []api.Part{api.TextPart(tt.want)}
			if !reflect.DeepEqual(parts, want) {
				t.Errorf("parts = %+v, want %+v", parts, want)
			}
		})
	}
}

func TestTransform_UnknownType(t *testing.T) {
	parts, ok := Transform("t", "s", &ToolResponse{Content: []ContentBlock{
		block("type", "hologram", "data", "AAA"),
	}})
	if !ok {
		t.Fatal("expected transformation to occur")
	}
	want := []api.Part{api.TextPart("[Unknown content type: hologram]")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_LegacyJSONText(t *testing.T) {
	// Legacy wrapper whose text field is itself a JSON-encoded text block.
	resp := &ToolResponse{Content: []ContentBlock{
		block("text", `{"type":"text","text":"nested"}`),
	}}

	parts, _ := Transform("t", "s", resp)
	want := []api.Part{api.TextPart("nested")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_LegacyJSONMedia(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		block("text", `{"type":"image","data":"AAA","mimeType":"image/png"}`),
	}}

	parts, _ := Transform("t", "s", resp)
	want := []api.Part{
		api.TextPart("[Response from t (s MCP Server)]"),
		api.DataPart("image/png", "AAA"),
	}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_LegacyPlainText(t *testing.T) {
	// A legacy payload that is not JSON becomes a literal text part.
	resp := &ToolResponse{Content: []ContentBlock{
		block("text", "just some output"),
	}}

	parts, ok := Transform("t", "s", resp)
	if !ok {
		t.Fatal("expected literal text to count as transformed output")
	}
	want := []api.Part{api.TextPart("just some output")}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_LegacyScalarJSONIsLiteral(t *testing.T) {
	// JSON that parses but is not an object stays literal text.
	resp := &ToolResponse{Content: []ContentBlock{
		block("text", `"quoted"`),
	}}

	parts, _ := Transform("t", "s", resp)
	want := []api.Part{api.TextPart(`"quoted"`)}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %+v, want %+v", parts, want)
	}
}

func TestTransform_OrderingMirrorsInput(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		block("type", "text", "text", "one"),
		block("type", "resource_link", "uri", "u", "name", "n"),
		block("type", "text", "text", "three"),
	}}

	parts, _ := Transform("t", "s", resp)
	if len(parts) != 3 {
		t.Fatalf("len(parts) = %d, want 3", len(parts))
	}
	if parts[0].Text != "one" || parts[2].Text != "three" {
		t.Errorf("part ordering does not mirror block ordering: %+v", parts)
	}
}
