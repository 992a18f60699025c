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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mtsuei/windowplane/config"
	"github.com/mtsuei/windowplane/internal"
	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/opensky"
	"github.com/mtsuei/windowplane/internal/app/service"
	"github.com/mtsuei/windowplane/internal/app/tools"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type parameters struct {
	Center       app.GeoPoint `json:"center"`
	RadiusKm     float64      `json:"radiusKm"`
	MinAltitudeM float64      `json:"minAltitudeM"`
	MaxResults   int          `json:"maxResults"`
}

type response struct {
	Parameters parameters         `json:"parameters"`
	Snapshot   time.Time          `json:"snapshot"`
	NbFlight   int                `json:"nbFlight"`
	Data       []app.NearbyResult `json:"data"`
}

type message struct {
	Message string `json:"message"`
}

// startHttpCmd represents the startHttp command
// see https://dev.to/moficodes/build-your-first-rest-api-with-go-2gcj
var startHttpCmd = &cobra.Command{
	Use:   "startHttp",
	Short: "Start the REST API answering nearby aircraft searches",
	Long: `The HTTP Rest API service start with config parameters.
	GET /api/v1/nearby?center=lat,lon&radius=km&minAlt=m&max=n
	Missing query parameters fall back to the configured search.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := viper.BindPFlag("http.listen", cmd.Flags().Lookup("listen")); err != nil {
			log.WithFields(logrus.Fields{
				"flag": "listen",
			}).Error("Unable to bind flag")
		}

		// Initialize config
		initConfig()

		r := newRouter(internal.NewService(log, *conf), *conf)

		log.WithFields(logrus.Fields{
			"listen": conf.Http.Listen,
		}).Info("REST API listening")

		//Start http server here
		log.Fatal(http.ListenAndServe(conf.Http.Listen, r))
	},
}

func newRouter(searchSvc *service.Service, base config.Configuration) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/nearby", nearbyHandler(searchSvc, base)).Methods(http.MethodGet)

	return r
}

//Search the aircraft around a point
// params : center, radius, minimum altitude, max results
// return : json
func nearbyHandler(searchSvc *service.Service, base config.Configuration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		query, errQuery := queryFromRequest(r, base)
		if errQuery != nil {
			writeMessage(w, http.StatusBadRequest, errQuery.Error())
			return
		}

		snapshot, data, errSearch := searchSvc.Nearby(r.Context(), query)
		if errSearch != nil {
			log.WithContext(r.Context()).WithFields(logrus.Fields{
				"Error": errSearch,
			}).Error("Nearby search failed")

			switch {
			case errors.Is(errSearch, service.ErrInvalidQuery):
				writeMessage(w, http.StatusBadRequest, errSearch.Error())
			case errors.Is(errSearch, opensky.ErrTransport):
				writeMessage(w, http.StatusBadGateway, fmt.Sprintf("data source unavailable (%s)", errSearch.Error()))
			default:
				writeMessage(w, http.StatusInternalServerError, fmt.Sprintf("internal server error (%s)", errSearch.Error()))
			}
			return
		}

		response := response{
			Parameters: parameters{
				Center:       query.Center,
				RadiusKm:     query.RadiusKm,
				MinAltitudeM: query.MinAltitudeM,
				MaxResults:   query.MaxResults,
			},
			Snapshot: snapshot,
			NbFlight: len(data),
			Data:     data,
		}

		result, errJsonMarshal := json.Marshal(response)
		if errJsonMarshal != nil {
			writeMessage(w, http.StatusInternalServerError, fmt.Sprintf("internal server error (%s)", errJsonMarshal.Error()))
			return
		}

		w.Write(result)
	}
}

func queryFromRequest(r *http.Request, base config.Configuration) (service.Query, error) {
	q := internal.QueryFromConfig(base)
	params := r.URL.Query()

	if centerParam := params.Get("center"); centerParam != "" {
		center, errCenter := tools.GetPoint(centerParam)
		if errCenter != nil {
			return q, fmt.Errorf("center have to be well formatted 'lat,lon' (%s)", errCenter.Error())
		}
		q.Center = center
	}
	if radiusParam := params.Get("radius"); radiusParam != "" {
		radius, errRadius := strconv.ParseFloat(radiusParam, 64)
		if errRadius != nil {
			return q, fmt.Errorf("radius need a number (%s)", errRadius.Error())
		}
		q.RadiusKm = radius
	}
	if minAltParam := params.Get("minAlt"); minAltParam != "" {
		minAlt, errMinAlt := strconv.ParseFloat(minAltParam, 64)
		if errMinAlt != nil {
			return q, fmt.Errorf("minAlt need a number (%s)", errMinAlt.Error())
		}
		q.MinAltitudeM = minAlt
	}
	if maxParam := params.Get("max"); maxParam != "" {
		maxResults, errMax := strconv.Atoi(maxParam)
		if errMax != nil {
			return q, fmt.Errorf("max need an integer (%s)", errMax.Error())
		}
		q.MaxResults = maxResults
	}

	return q, nil
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(message{Message: msg})
}

func init() {
	startHttpCmd.Flags().String("listen", ":8080", "listen address of the REST API")
}
