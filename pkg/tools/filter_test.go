package tools

import (
	"testing"
)

func TestFilterAllowed(t *testing.T) {
	tests := []struct {
		name         string
		calls        []ToolCall
		allowedTools []string
		wantAllowed  int
		wantRejected int
	}{
		{
			name: "all allowed when no filter",
			calls: []ToolCall{
				{ID: "c1", Name: "get_weather"},
				{ID: "c2", Name: "search"},
			},
			allowedTools: nil,
			wantAllowed:  2,
			wantRejected: 0,
		},
		{
			name: "all allowed when empty filter",
			calls: []ToolCall{
				{ID: "c1", Name: "get_weather"},
			},
			allowedTools: []string{},
			wantAllowed:  1,
			wantRejected: 0,
		},
		{
			name: "some rejected",
			calls: []ToolCall{
				{ID: "c1", Name: "get_weather"},
				{ID: "c2", Name: "delete_account"},
				{ID: "c3", Name: "search"},
			},
			allowedTools: []string{"get_weather", "search"},
			wantAllowed:  2,
			wantRejected: 1,
		},
		{
			name: "all rejected",
			calls: []ToolCall{
				{ID: "c1", Name: "delete_account"},
				{ID: "c2", Name: "drop_table"},
			},
			allowedTools: []string{"get_weather"},
			wantAllowed:  0,
			wantRejected: 2,
		},
		{
			name:         "empty calls",
			calls:        []ToolCall{},
			allowedTools: []string{"get_weather"},
			wantAllowed:  0,
			wantRejected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterAllowed(tt.calls, tt.allowedTools)
			if len(result.Allowed) != tt.wantAllowed {
				t.Errorf("len(Allowed) = %d, want %d", len(result.Allowed), tt.wantAllowed)
			}
			if len(result.Rejected) != tt.wantRejected {
				t.Errorf("len(Rejected) = %d, want %d", len(result.Rejected), tt.wantRejected)
			}
		})
	}
}

func TestFilterAllowed_RejectedShape(t *testing.T) {
	result := FilterAllowed(
		[]ToolCall{{ID: "c9", Name: "drop_table"}},
		[]string{"get_weather"},
	)

	if len(result.Rejected) != 1 {
		t.Fatalf("len(Rejected) = %d, want 1", len(result.Rejected))
	}
	rej := result.Rejected[0]
	if rej.CallID != "c9" {
		t.Errorf("CallID = %q, want %q", rej.CallID, "c9")
	}
	if !rej.IsError {
		t.Error("expected IsError to be true")
	}
	if len(rej.Parts) != 1 || rej.Parts[0].Text == "" {
		t.Errorf("expected a single text part, got %+v", rej.Parts)
	}
	if rej.Display != rej.Parts[0].Text {
		t.Errorf("Display = %q, want same as part text %q", rej.Display, rej.Parts[0].Text)
	}
}
