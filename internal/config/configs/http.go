package configs

// HTTP defines configuration for the stub backend server. The Port
// specifies which port the server will bind to. Seed controls whether the
// in-memory repository is populated with sample campaigns on startup.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// Seed populates the repository with demo campaigns when true.
	Seed bool `env:"SEED" envDefault:"true"`
}
