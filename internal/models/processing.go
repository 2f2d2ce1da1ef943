package models

// ProcessingRequest asks for filename to be resized to exactly Width x Height.
type ProcessingRequest struct {
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// FailureKind classifies a failed ProcessingResult.
type FailureKind string

const (
	KindNone       FailureKind = ""
	KindInput      FailureKind = "input"
	KindNotFound   FailureKind = "not_found"
	KindProcessing FailureKind = "processing"
)

// ProcessingResult is the outcome of a resize request. Exactly one of
// OutputPath (Success) or Error (failure) is meaningful.
type ProcessingResult struct {
	Success    bool        `json:"success"`
	OutputPath string      `json:"output_path,omitempty"`
	Cached     bool        `json:"cached,omitempty"`
	Kind       FailureKind `json:"kind,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func Succeeded(outputPath string, cached bool) ProcessingResult {
	return ProcessingResult{Success: true, OutputPath: outputPath, Cached: cached}
}

func Failed(kind FailureKind, message string) ProcessingResult {
	return ProcessingResult{Kind: kind, Error: message}
}

// Outcome is a short label used for logs and metrics.
func (r ProcessingResult) Outcome() string {
	switch {
	case r.Success && r.Cached:
		return "cached"
	case r.Success:
		return "generated"
	default:
		return string(r.Kind)
	}
}
