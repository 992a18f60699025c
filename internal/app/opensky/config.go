package opensky

// Configuration settings for the OpenSky REST source
type Configuration struct {
	Endpoint    string `toml:"endpoint" default:"https://opensky-network.org/api" comment:"OpenSky REST API root"`
	Extended    bool   `toml:"extended" default:"true" comment:"ask for extended state vectors (aircraft category)"`
	MinInterval int    `toml:"minInterval" default:"1" comment:"minimum seconds between two requests, 0 disables the limiter"`
}
