package languages

import "time"

// LanguageSpec defines one client generation target: which external tool to
// run and how.
type LanguageSpec struct {
	// Identification
	ID          string `json:"id"`           // "typescript", "python"
	Name        string `json:"name"`         // "TypeScript", "Python"
	DisplayName string `json:"display_name"` // "TypeScript (@hey-api/openapi-ts)"

	// Tool is the executable looked up on PATH by the dependency check.
	Tool string `json:"tool"`

	// Command is the argv template executed per task.
	// Placeholders: {schema}, {output}, {zone}, {language}.
	Command []string `json:"command"`

	// InstallCommand performs the opt-in installation of the tool.
	InstallCommand []string `json:"install_command,omitempty"`

	// Timeout bounds one invocation of the tool.
	Timeout time.Duration `json:"timeout"`

	// FileExtensions of the generated sources, for display.
	FileExtensions []string `json:"file_extensions,omitempty"`

	// Status
	Enabled      bool `json:"enabled"`
	Stable       bool `json:"stable"`
	Experimental bool `json:"experimental"`

	// Documentation
	Description      string `json:"description,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// Validate checks if the language spec is valid.
func (ls *LanguageSpec) Validate() error {
	if ls.ID == "" {
		return ErrInvalidLanguageID
	}
	if ls.Name == "" {
		return ErrInvalidLanguageName
	}
	if ls.Tool == "" {
		return ErrInvalidTool
	}
	if len(ls.Command) == 0 {
		return ErrInvalidCommand
	}
	return nil
}

// Override carries per-language configuration overrides applied on top of
// the built-in defaults.
type Override struct {
	Enabled *bool
	Command []string
	Timeout time.Duration
}

// Common language IDs
const (
	LanguageTypeScript = "typescript"
	LanguagePython     = "python"
)
