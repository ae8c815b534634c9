package config

const defaultBackend = "file"

type AppConfig struct {
	StorageBackend string `yaml:"storage"`
}

func (s *AppConfig) Storage() string {
	if s.StorageBackend == "" {
		return defaultBackend
	}
	return s.StorageBackend
}
