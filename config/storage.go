package config

// StorageConfig contains download-root configuration.
type StorageConfig struct {
	// DownloadRoot is the directory under which all fetched content is
	// stored and from which listings and downloads are served. Created at
	// startup if absent.
	DownloadRoot string `env:"DOWNLOAD_DIR" envDefault:"downloads" yaml:"download_root"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.DownloadRoot == "" {
		s.DownloadRoot = "downloads"
	}
}
