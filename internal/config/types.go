package config

// Config is the merged runtime configuration. CLI flags are applied on top
// by the caller.
type Config struct {
	Run     RunConfig     `yaml:"run"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
}

// RunConfig controls the processing pipeline.
type RunConfig struct {
	Threads       int    `yaml:"threads"`        // 0 means one per CPU
	BatchSize     int    `yaml:"batch_size"`     // records per worker hand-off
	ProgressEvery uint64 `yaml:"progress_every"` // 0 disables progress lines
}

// LogConfig controls stderr logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StorageConfig configures the S3-compatible object store used for s3://
// paths. An empty Endpoint leaves s3:// paths unsupported.
type StorageConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Insecure     bool   `yaml:"insecure"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	SessionToken string `yaml:"-"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Threads:       0,
			BatchSize:     256,
			ProgressEvery: 100_000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
