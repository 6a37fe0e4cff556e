package config

// YAMLProject mirrors .graphql-client.yml on disk. All keys are optional;
// the mapper fills defaults.
type YAMLProject struct {
	Endpoint      string            `yaml:"endpoint"`
	Authorization string            `yaml:"authorization"`
	Headers       map[string]string `yaml:"headers"`
	Timeout       string            `yaml:"timeout"`

	Schema  string `yaml:"schema"`
	Output  string `yaml:"output"`
	Package string `yaml:"package"`

	SelectedOperation   string            `yaml:"selected_operation"`
	DeprecationStrategy string            `yaml:"deprecation_strategy"`
	Scalars             map[string]string `yaml:"scalars"`
	NoFormatting        bool              `yaml:"no_formatting"`
}
