package tools

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mtsuei/windowplane/internal/app"
)

//GetPoint - parse a 'lat,lon' string in decimal degrees
func GetPoint(data string) (app.GeoPoint, error) {
	result := app.GeoPoint{}
	latlon := strings.Split(data, ",")
	if len(latlon) != 2 {
		return result, errors.New("Point malformed - need , for separating lat and lon coordinate")
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latlon[0]), 64)
	if errLat != nil {
		return result, errLat
	}
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(latlon[1]), 64)
	if errLon != nil {
		return result, errLon
	}
	result.Latitude = lat
	result.Longitude = lon

	return result, CheckPoint(result)
}

//CheckPoint - validate latitude in [-90,90] and longitude in [-180,180]
func CheckPoint(p app.GeoPoint) error {
	if !(p.Latitude >= -90 && p.Latitude <= 90) {
		return fmt.Errorf("latitude %v out of range [-90,90]", p.Latitude)
	}
	if !(p.Longitude >= -180 && p.Longitude <= 180) {
		return fmt.Errorf("longitude %v out of range [-180,180]", p.Longitude)
	}
	return nil
}

//PointToString - format a point the way GetPoint reads it
func PointToString(p app.GeoPoint) string {
	return fmt.Sprintf("%.5f,%.5f", p.Latitude, p.Longitude)
}
