package cmd

/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	defaults "github.com/mcuadros/go-defaults"
	"github.com/mtsuei/windowplane/config"
	"github.com/mtsuei/windowplane/internal"
	"github.com/mtsuei/windowplane/internal/app/tools"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flag name -> configuration key
var nearbyFlagKeys = map[string]string{
	"lat":          "nearby.latitude",
	"lon":          "nearby.longitude",
	"radius":       "nearby.radiuskm",
	"min-alt":      "nearby.minaltitudem",
	"max":          "nearby.maxresults",
	"timeout":      "nearby.timeout",
	"sinkerType":   "nearby.sinkertype",
	"outputraw":    "nearby.file.outputraw",
	"outputreport": "nearby.file.outputreport",
}

// nearbyCmd represents the nearby command
var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List the aircraft flying around a point",
	Long: `Fetch the current OpenSky states around a point, keep the airborne
	aircraft inside the radius and above the altitude floor, and report the
	closest ones with their distance and bearing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		for name, key := range nearbyFlagKeys {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				log.WithFields(logrus.Fields{
					"flag": name,
				}).Error("Unable to bind flag")
			}
		}

		// Initialize config
		initConfig()

		if center, _ := cmd.Flags().GetString("center"); center != "" {
			point, errPoint := tools.GetPoint(center)
			if errPoint != nil {
				log.WithFields(logrus.Fields{
					"center": center,
					"Error":  errPoint,
				}).Fatal("Invalid --center")
			}
			conf.Nearby.Latitude = point.Latitude
			conf.Nearby.Longitude = point.Longitude
		}

		errExec := internal.Execute(ctx, log, *conf)
		if errExec != nil {
			log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": errExec,
			}).Error("Error in Execute processing")
			stop()
			os.Exit(1)
		}
	},
}

func init() {
	d := config.Configuration{}
	defaults.SetDefaults(&d)

	nearbyCmd.Flags().Float64("lat", d.Nearby.Latitude, "search center latitude (decimal degrees)")
	nearbyCmd.Flags().Float64("lon", d.Nearby.Longitude, "search center longitude (decimal degrees)")
	nearbyCmd.Flags().String("center", "", "search center as 'lat,lon', overrides --lat and --lon")
	nearbyCmd.Flags().Float64("radius", d.Nearby.RadiusKm, "search radius in kilometers")
	nearbyCmd.Flags().Float64("min-alt", d.Nearby.MinAltitudeM, "ignore aircraft below this altitude (meters)")
	nearbyCmd.Flags().Int("max", d.Nearby.MaxResults, "maximum number of aircraft reported")
	nearbyCmd.Flags().Int("timeout", d.Nearby.Timeout, "request timeout in seconds")
	nearbyCmd.Flags().String("sinkerType", d.Nearby.Sinkertype, "set the sinker type (STDOUT|FILE)")
	nearbyCmd.Flags().String("outputraw", d.Nearby.File.Outputraw, "set the output file name for raw results")
	nearbyCmd.Flags().String("outputreport", d.Nearby.File.Outputreport, "set the output file name for the report")
}
