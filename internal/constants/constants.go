package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "reposcan"

	// ConfigFileName is the default config file name
	ConfigFileName = ".reposcan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "REPOSCAN"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Well-known metadata keys shared with downstream renderers.
// Renaming any of these breaks report consumers.
const (
	MetadataName               = "name"
	MetadataVersion            = "version"
	MetadataDescription        = "description"
	MetadataKeywords           = "keywords"
	MetadataAuthors            = "authors"
	MetadataLicense            = "license"
	MetadataLicenseFile        = "license_file"
	MetadataDOI                = "doi"
	MetadataRepositoryCode     = "repository_code"
	MetadataPythonDependencies = "python_dependencies"
	MetadataConductFile        = "conduct_file"
	MetadataContributingFile   = "contributing_file"
	MetadataReadmeFile         = "readme_file"
)
