package domain

// Template is the fixed instruction set for one action plus the wrapper
// applied to the user's content. Wrapper is a fmt format with a single %s verb,
// or empty when the content is sent as-is.
type Template struct {
	Action       Action
	Instructions string
	Wrapper      string
}

// Prompt is what the gateway receives for a text or image request.
type Prompt struct {
	Instructions string
	Content      string
}
