package file

// Configuration settings for file sinking
type Configuration struct {
	Outputraw    string `toml:"outputraw" default:"log/rawData.log" comment:"output file name for the JSON results"`
	Outputreport string `toml:"outputreport" default:"log/report.log" comment:"output file name for the human readable report"`
}
