// Package domain defines core entities and value objects for aicli.
//
// The domain layer is independent of infrastructure concerns: it names the
// actions a user can run, the prompts and generation settings handed to the
// AI gateway, and the artifacts written back to disk.
package domain

import "fmt"

// Action is one of the fixed command kinds exposed by the CLI.
type Action string

const (
	ActionAsk           Action = "ask"
	ActionExplain       Action = "explain"
	ActionReview        Action = "review"
	ActionOptimize      Action = "optimize"
	ActionRefactor      Action = "refactor"
	ActionDocument      Action = "document"
	ActionDocumentPlain Action = "document-plain"
	ActionGenerateImage Action = "image"
	ActionModifyImage   Action = "image-mod"
)

// Actions lists every action in the order the help screen shows them.
var Actions = []Action{
	ActionAsk,
	ActionDocument,
	ActionDocumentPlain,
	ActionExplain,
	ActionGenerateImage,
	ActionModifyImage,
	ActionOptimize,
	ActionRefactor,
	ActionReview,
}

// ParseAction resolves a command name into an Action.
func ParseAction(name string) (Action, error) {
	for _, action := range Actions {
		if string(action) == name {
			return action, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", name)
}

// TakesFile reports whether the action reads a source file from disk.
func (a Action) TakesFile() bool {
	switch a {
	case ActionExplain, ActionReview, ActionOptimize, ActionRefactor, ActionDocument, ActionDocumentPlain, ActionModifyImage:
		return true
	default:
		return false
	}
}

// ProducesImage reports whether the gateway returns binary image data for the action.
func (a Action) ProducesImage() bool {
	return a == ActionGenerateImage || a == ActionModifyImage
}
