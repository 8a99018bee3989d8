package config

type yamlConfig struct {
	Reboot struct {
		Output struct {
			Format string `yaml:"format"`
		} `yaml:"output"`

		Region      string  `yaml:"region"`
		Check       *bool   `yaml:"check"`
		RenderLimit *uint64 `yaml:"render_limit"`

		Runs struct {
			Dir  string `yaml:"dir"`
			Save *bool  `yaml:"save"`
		} `yaml:"runs"`

		Logs struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"logs"`
	} `yaml:"reboot"`
}
