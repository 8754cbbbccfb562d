package tools

// FilterResult holds the outcome of screening tool calls against an
// allowed-tools list.
type FilterResult struct {
	// Allowed contains tool calls that passed the filter.
	Allowed []ToolCall

	// Rejected contains error results for tool calls that were not in
	// the allowed list, ready to feed back to the model.
	Rejected []ToolResult
}

// FilterAllowed checks each tool call against the allowed list.
// If allowedTools is empty or nil, all tool calls are allowed.
func FilterAllowed(calls []ToolCall, allowedTools []string) FilterResult {
	// No filter: all allowed.
	if len(allowedTools) == 0 {
		return FilterResult{Allowed: calls}
	}

	// Build lookup set.
	allowed := make(map[string]bool, len(allowedTools))
	for _, name := range allowedTools {
		allowed[name] = true
	}

	var result FilterResult
	for _, call := range calls {
		if allowed[call.Name] {
			result.Allowed = append(result.Allowed, call)
		} else {
			result.Rejected = append(result.Rejected,
				*TextResult(call.ID, "tool "+call.Name+" is not in the allowed tools list", true))
		}
	}

	return result
}
