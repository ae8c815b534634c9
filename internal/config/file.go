package config

const defaultDataDir = "data"

type FileConfig struct {
	DataDir string `yaml:"dir"`
}

func (s *FileConfig) Dir() string {
	if s.DataDir == "" {
		return defaultDataDir
	}
	return s.DataDir
}
