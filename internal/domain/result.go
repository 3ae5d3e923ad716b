package domain

import "time"

// TextResult is a gateway reply for text actions.
type TextResult struct {
	Body string
}

// BinaryResult is a gateway reply for image actions.
type BinaryResult struct {
	Data     []byte
	MIMEType string
}

// Attachment is a file handed to the gateway alongside the prompt.
type Attachment struct {
	Path     string
	MIMEType string
	Data     []byte
}

// ArtifactKind describes what a saved file holds.
type ArtifactKind string

const (
	ArtifactDocumentation ArtifactKind = "documentation"
	ArtifactImage         ArtifactKind = "image"
	ArtifactMetadata      ArtifactKind = "metadata"
)

// Artifact is a file written as the visible output of a command.
type Artifact struct {
	Path string
	Kind ArtifactKind
	Size int64
}

// MetadataType distinguishes generation and modification sidecars.
type MetadataType string

const (
	MetadataGeneration   MetadataType = "generation"
	MetadataModification MetadataType = "modification"
)

// MetadataSettings is the settings snapshot stored in a sidecar.
type MetadataSettings struct {
	Quality     Quality `json:"quality"`
	AspectRatio Aspect  `json:"aspect_ratio"`
	Count       int     `json:"count"`
	Timeout     int     `json:"timeout"`
}

// Metadata is the JSON sidecar written next to generated images. Field order
// is the serialized key order.
type Metadata struct {
	Type           MetadataType     `json:"type"`
	Timestamp      string           `json:"timestamp"`
	SourceImage    string           `json:"source_image,omitempty"`
	Prompt         string           `json:"prompt,omitempty"`
	Modification   string           `json:"modification,omitempty"`
	Settings       MetadataSettings `json:"settings"`
	GeneratedFiles []string         `json:"generated_files"`
	FileCount      int              `json:"file_count"`
}

// NewMetadata builds a sidecar record; FileCount always equals len(files).
func NewMetadata(kind MetadataType, at time.Time, text string, settings GenerationSettings, files []string) Metadata {
	meta := Metadata{
		Type:      kind,
		Timestamp: at.Format(MetadataTimestampFormat),
		Settings: MetadataSettings{
			Quality:     settings.Quality,
			AspectRatio: settings.Aspect,
			Count:       settings.Count,
			Timeout:     settings.TimeoutSeconds(),
		},
		GeneratedFiles: append([]string{}, files...),
		FileCount:      len(files),
	}
	if kind == MetadataModification {
		meta.Modification = text
	} else {
		meta.Prompt = text
	}
	return meta
}
