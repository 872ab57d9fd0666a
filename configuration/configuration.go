package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Buckets           int    `usage:"default bucket count for new hash indexes"`
	MaxEntries        int    `usage:"max entries per store, 0 means unlimited"`
	LogLevel          string `usage:"log level: trace | debug | info | warn | error"`
	LogFormat         string `usage:"log format: console | json"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() *Configuration {
	return &Configuration{
		HttpAddr:          "127.0.0.1:8080",
		Buckets:           100,
		MaxEntries:        0,
		LogLevel:          "info",
		LogFormat:         "console",
		EnableCompression: true,
		Version:           false,
		ShowBanner:        true,
		ShowConfig:        false,
	}
}
