package config

const defaultPostgresPort = 5432

type PostgresConfig struct {
	Hostname   string `yaml:"host"`
	PortNumber int    `yaml:"port"`
	Db         string `yaml:"db"`
	User       string `yaml:"username"`
	Pswd       string `yaml:"password"`
}

func (s *PostgresConfig) Host() string {
	return s.Hostname
}

func (s *PostgresConfig) Port() int {
	if s.PortNumber == 0 {
		return defaultPostgresPort
	}
	return s.PortNumber
}

func (s *PostgresConfig) Database() string {
	return s.Db
}

func (s *PostgresConfig) Username() string {
	return s.User
}

func (s *PostgresConfig) Password() string {
	return s.Pswd
}
