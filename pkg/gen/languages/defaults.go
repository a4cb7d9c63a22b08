package languages

import "time"

// GetDefaultLanguages returns the built-in generation targets.
func GetDefaultLanguages() []*LanguageSpec {
	return []*LanguageSpec{
		{
			ID:          LanguageTypeScript,
			Name:        "typescript",
			DisplayName: "TypeScript",
			Tool:        "npx",
			Command: []string{
				"npx", "--yes", "@hey-api/openapi-ts",
				"-i", "{schema}",
				"-o", "{output}",
			},
			InstallCommand:   []string{"npm", "install", "-g", "@hey-api/openapi-ts"},
			Timeout:          2 * time.Minute,
			FileExtensions:   []string{".ts"},
			Enabled:          true,
			Stable:           true,
			Description:      "TypeScript client with typed requests and responses",
			DocumentationURL: "https://heyapi.dev/openapi-ts/get-started",
		},
		{
			ID:          LanguagePython,
			Name:        "python",
			DisplayName: "Python",
			Tool:        "datamodel-codegen",
			Command: []string{
				"datamodel-codegen",
				"--input", "{schema}",
				"--input-file-type", "openapi",
				"--output", "{output}",
			},
			InstallCommand:   []string{"pip", "install", "datamodel-code-generator"},
			Timeout:          2 * time.Minute,
			FileExtensions:   []string{".py"},
			Enabled:          true,
			Stable:           true,
			Description:      "Python models generated from the extracted schema",
			DocumentationURL: "https://koxudaxi.github.io/datamodel-code-generator/",
		},
	}
}
