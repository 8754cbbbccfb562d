package api

// Part is one canonical unit of tool output delivered to the model
// runtime. Exactly one of Text or InlineData is set.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob carries base64-encoded binary data with its mime type.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// TextPart builds a text-only Part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// DataPart builds an inline-data Part.
func DataPart(mimeType, data string) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: data}}
}
