package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "sweepy"

	// ConfigFileName is the default config file name
	ConfigFileName = ".sweepy.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "SWEEPY"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)
