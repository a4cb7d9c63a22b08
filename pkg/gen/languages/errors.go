package languages

import "errors"

var (
	// ErrLanguageNotFound is returned when a language is not in the registry
	ErrLanguageNotFound = errors.New("language not found")

	// ErrLanguageAlreadyExists is returned when registering a duplicate language
	ErrLanguageAlreadyExists = errors.New("language already exists")

	// ErrLanguageDisabled is returned when selecting a disabled language
	ErrLanguageDisabled = errors.New("language is disabled")

	// ErrInvalidLanguageID is returned when a language ID is empty
	ErrInvalidLanguageID = errors.New("invalid language ID")

	// ErrInvalidLanguageName is returned when a language name is empty
	ErrInvalidLanguageName = errors.New("invalid language name")

	// ErrInvalidTool is returned when a language declares no tool executable
	ErrInvalidTool = errors.New("invalid tool executable")

	// ErrInvalidCommand is returned when a language declares no command template
	ErrInvalidCommand = errors.New("invalid command template")
)
