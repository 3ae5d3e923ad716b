// Package prompts holds the fixed instruction set for every action and the
// wrapper that frames the user's content before it reaches the gateway.
package prompts

import (
	"fmt"
	"strings"

	"github.com/doeshing/aicli/internal/domain"
)

const (
	plainTextRules = "Format your response as plain text only. " +
		"Use numbered or bullet lists (with - or *) for lists only. " +
		"Do NOT use markdown headers (# ## ###), bold (**), italics (*), code blocks (```), or any other markdown formatting. " +
		"Write clear, readable plain text with line breaks between sections."

	askInstructions = "You are a helpful assistant answering developer questions clearly and concisely."

	explainInstructions = "You explain application errors and log files in simple terms and suggest fixes. " + plainTextRules

	reviewInstructions = "You are a senior software engineer reviewing code for bugs, performance, and best practices. " + plainTextRules

	optimizeInstructions = "You are a performance optimization expert analyzing code for efficiency improvements. " +
		"Identify performance bottlenecks, suggest optimizations, check for N+1 query problems, " +
		"recommend caching strategies, and provide database query optimization tips. " + plainTextRules

	refactorInstructions = "You are an expert code refactorer focused on improving code quality, readability, and maintainability. " +
		"Suggest refactoring improvements, apply design patterns, simplify complex logic, improve naming conventions, " +
		"and ensure SOLID principles are followed. Provide specific actionable suggestions. " + plainTextRules

	documentPlainInstructions = "You are a technical documentation expert. Generate comprehensive documentation including: " +
		"doc comments for types and functions, detailed descriptions of functionality, parameter documentation, " +
		"return value documentation, usage examples, and explanations of complex logic. " +
		"Make the code self-documenting and easy to understand for other developers. " + plainTextRules

	documentMarkdownInstructions = "You are a technical documentation expert creating comprehensive markdown documentation. " +
		"Generate detailed documentation including: " +
		"1. Overview section explaining the purpose and functionality " +
		"2. Doc comments for all types, functions, and fields " +
		"3. Parameters and return type documentation " +
		"4. Usage examples with code blocks " +
		"5. Important notes and edge cases " +
		"6. See Also section with related files/types if applicable " +
		"Use proper markdown formatting with headers (# ## ###), bold (**text**), fenced code blocks, " +
		"bullet points, numbered lists, and tables where appropriate. " +
		"Make the documentation professional, clear, and easy to understand for other developers. " +
		"Use markdown formatting extensively for better readability."

	imageInstructions = "You are an expert image generation assistant. " +
		"Generate detailed, creative, and high-quality images based on the user's description. " +
		"Include details about style, composition, lighting, colors, and mood."

	imageModInstructions = "You are an expert image modification and enhancement specialist. " +
		"Analyze the provided image and implement the requested modifications. " +
		"Modifications can include: style changes, color adjustments, element additions or removal, composition adjustments, " +
		"background changes, filtering effects, or any creative enhancement."
)

var registry = map[domain.Action]domain.Template{
	domain.ActionAsk: {
		Action:       domain.ActionAsk,
		Instructions: askInstructions,
	},
	domain.ActionExplain: {
		Action:       domain.ActionExplain,
		Instructions: explainInstructions,
		Wrapper:      "Explain the following file:\n\n%s",
	},
	domain.ActionReview: {
		Action:       domain.ActionReview,
		Instructions: reviewInstructions,
		Wrapper:      "Review the following code:\n\n%s",
	},
	domain.ActionOptimize: {
		Action:       domain.ActionOptimize,
		Instructions: optimizeInstructions,
		Wrapper:      "Optimize the following code:\n\n%s",
	},
	domain.ActionRefactor: {
		Action:       domain.ActionRefactor,
		Instructions: refactorInstructions,
		Wrapper:      "Refactor the following code:\n\n%s",
	},
	domain.ActionDocument: {
		Action:       domain.ActionDocument,
		Instructions: documentMarkdownInstructions,
		Wrapper:      "Generate comprehensive markdown documentation for the following code:\n\n%s",
	},
	domain.ActionDocumentPlain: {
		Action:       domain.ActionDocumentPlain,
		Instructions: documentPlainInstructions,
		Wrapper:      "Generate comprehensive documentation for the following code:\n\n%s",
	},
	domain.ActionGenerateImage: {
		Action:       domain.ActionGenerateImage,
		Instructions: imageInstructions,
	},
	domain.ActionModifyImage: {
		Action:       domain.ActionModifyImage,
		Instructions: imageModInstructions,
	},
}

// TemplateFor returns the template registered for action.
func TemplateFor(action domain.Action) (domain.Template, error) {
	tmpl, ok := registry[action]
	if !ok {
		return domain.Template{}, fmt.Errorf("no prompt template for action %q", action)
	}
	return tmpl, nil
}

// WrapUserContent frames raw content the way the action's template expects.
// Unknown actions and templates without a wrapper return raw unchanged.
func WrapUserContent(action domain.Action, raw string) string {
	tmpl, ok := registry[action]
	if !ok || tmpl.Wrapper == "" {
		return raw
	}
	return fmt.Sprintf(tmpl.Wrapper, raw)
}

// Build produces the prompt for action. Content is rejected when blank so a
// file-based action never sends an empty body.
func Build(action domain.Action, raw string) (domain.Prompt, error) {
	tmpl, err := TemplateFor(action)
	if err != nil {
		return domain.Prompt{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return domain.Prompt{}, fmt.Errorf("empty content for action %q", action)
	}
	return domain.Prompt{
		Instructions: tmpl.Instructions,
		Content:      WrapUserContent(action, raw),
	}, nil
}

// IsMarkdown reports whether the action's instructions ask for markdown output.
func IsMarkdown(action domain.Action) bool {
	return action == domain.ActionDocument
}
