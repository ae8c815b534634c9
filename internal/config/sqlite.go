package config

type SqliteConfig struct {
	DbPath string `yaml:"path"`
}

func (s *SqliteConfig) Path() string {
	return s.DbPath
}
