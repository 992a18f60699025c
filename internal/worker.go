package internal

import (
	"context"
	"errors"
	"time"

	"github.com/mtsuei/windowplane/config"
	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/opensky"
	"github.com/mtsuei/windowplane/internal/app/service"
	fileSinker "github.com/mtsuei/windowplane/internal/app/sinkers/file"
	stdoutSinker "github.com/mtsuei/windowplane/internal/app/sinkers/stdout"
	"github.com/sirupsen/logrus"
)

//ErrUnknownSinker - the configured sinker type is not handled
var ErrUnknownSinker = errors.New("Wrong sinker specified")

//Execute - run one nearby search and hand the result to the configured sinker
func Execute(ctx context.Context,
	log *logrus.Logger,
	conf config.Configuration) error {

	log.WithContext(ctx).WithFields(logrus.Fields{
		"latitude":          conf.Nearby.Latitude,
		"longitude":         conf.Nearby.Longitude,
		"radiusKm":          conf.Nearby.RadiusKm,
		"minAltitudeM":      conf.Nearby.MinAltitudeM,
		"maxResults":        conf.Nearby.MaxResults,
		"timeout (sec)":     conf.Nearby.Timeout,
		"sinkerType":        conf.Nearby.Sinkertype,
		"openskyEndpoint":   conf.Nearby.Opensky.Endpoint,
		"outputReportFile":  conf.Nearby.File.Outputreport,
		"outputResultsFile": conf.Nearby.File.Outputraw,
	}).Info("START with Configuration params: ")

	sinker, errSinker := NewSinker(log, conf)
	if errSinker != nil {
		log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": errSinker,
		}).Error("Unable to create sinker")
		return errSinker
	}
	errInit := sinker.Init(ctx)
	if errInit != nil {
		log.WithContext(ctx).Error(errInit)
		return errInit
	}
	defer func() {
		if errClose := sinker.Close(); errClose != nil {
			log.WithContext(ctx).Error(errClose)
		}
	}()

	searchSvc := NewService(log, conf)
	return run(ctx, searchSvc, QueryFromConfig(conf), sinker, log)
}

//NewSinker - build the sinker named by the configuration
func NewSinker(log *logrus.Logger, conf config.Configuration) (app.Sinker, error) {
	switch conf.Nearby.Sinkertype {
	case "STDOUT":
		return stdoutSinker.New(log), nil
	case "FILE":
		return fileSinker.New(log, conf.Nearby.File), nil
	default:
		return nil, ErrUnknownSinker
	}
}

//NewService - build the nearby search service over the OpenSky source
func NewService(log *logrus.Logger, conf config.Configuration) *service.Service {
	source := opensky.New(log, conf.Nearby.Opensky, timeout(conf))
	return service.New(log, source)
}

//QueryFromConfig - the nearby query described by the configuration
func QueryFromConfig(conf config.Configuration) service.Query {
	return service.Query{
		Center:       app.GeoPoint{Latitude: conf.Nearby.Latitude, Longitude: conf.Nearby.Longitude},
		RadiusKm:     conf.Nearby.RadiusKm,
		MinAltitudeM: conf.Nearby.MinAltitudeM,
		MaxResults:   conf.Nearby.MaxResults,
		Timeout:      timeout(conf),
		Extended:     conf.Nearby.Opensky.Extended,
	}
}

func timeout(conf config.Configuration) time.Duration {
	return time.Duration(conf.Nearby.Timeout) * time.Second
}

func run(ctx context.Context, searchSvc *service.Service, query service.Query, sinker app.Sinker, log *logrus.Logger) error {
	snapshot, results, errSearch := searchSvc.Nearby(ctx, query)
	if errSearch != nil {
		log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": errSearch,
		}).Error("Unable to get nearby flights")
		return errSearch
	}

	errSink := sinker.Sink(ctx, snapshot, results)
	if errSink != nil {
		log.WithContext(ctx).Error(errSink)
		return errSink
	}

	return nil
}
