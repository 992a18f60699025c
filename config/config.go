package config

import (
	"github.com/mtsuei/windowplane/internal/app/opensky"
	"github.com/mtsuei/windowplane/internal/app/sinkers/file"
)

// Configuration contains the nearby search settings
type Configuration struct {
	Log struct {
		Level string `toml:"level" default:"warn" comment:"Log level: trace, debug, info, warn, error, fatal and panic"`
	} `toml:"Log" comment:"###############################\n Logs Settings \n##############################"`

	Nearby struct {
		Latitude     float64               `toml:"latitude" default:"33.95812" comment:"search center latitude (decimal degrees)"`
		Longitude    float64               `toml:"longitude" default:"-118.39025" comment:"search center longitude (decimal degrees)"`
		RadiusKm     float64               `toml:"radiusKm" default:"50" comment:"search radius in kilometers"`
		MinAltitudeM float64               `toml:"minAltitudeM" default:"200" comment:"ignore aircraft below this altitude (meters)"`
		MaxResults   int                   `toml:"maxResults" default:"10" comment:"maximum number of aircraft reported"`
		Timeout      int                   `toml:"timeout" default:"10" comment:"request timeout in seconds"`
		Sinkertype   string                `toml:"sinkertype" default:"STDOUT" comment:"the sinker Type use (STDOUT|FILE)"`
		Opensky      opensky.Configuration `toml:"opensky" comment:"###############################\n OpenSky source configuration \n##############################"`
		File         file.Configuration    `toml:"file" comment:"###############################\n file sinker configuration \n##############################"`
	} `toml:"Nearby" comment:"###############################\n Nearby Settings \n##############################"`

	Http struct {
		Listen string `toml:"listen" default:":8080" comment:"listen address of the REST API"`
	} `toml:"Http" comment:"###############################\n REST API Settings \n##############################"`
}
