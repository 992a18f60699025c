package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/report"
	"github.com/sirupsen/logrus"
)

const separator = "\n====================================\n"

type FileSinker struct {
	Log      *logrus.Logger
	conf     Configuration
	fReport  *os.File
	fResults *os.File
}

func New(log *logrus.Logger, conf Configuration) app.Sinker {
	return &FileSinker{Log: log, conf: conf}
}

func (s *FileSinker) Init(ctx context.Context) error {
	fReport, err := s.open(ctx, s.conf.Outputreport)
	if err != nil {
		return err
	}
	s.fReport = fReport

	fResults, err := s.open(ctx, s.conf.Outputraw)
	if err != nil {
		return err
	}
	s.fResults = fResults

	return nil
}

func (s *FileSinker) open(ctx context.Context, name string) (*os.File, error) {
	if name == "" {
		return nil, errors.New("No output file name configured")
	}
	dir := filepath.Dir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, os.ModePerm)
		if err != nil {
			s.Log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": err,
			}).Error("Unable to create folder '" + dir + "'")
			return nil, err
		}
	}

	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.Log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": err,
		}).Error("Unable to Open file")
		return nil, err
	}
	return f, nil
}

func (s *FileSinker) Sink(ctx context.Context, t time.Time, data []app.NearbyResult) error {
	errReport := s.storeReportOnFile(ctx, t, data)
	if errReport != nil {
		return errReport
	}

	errResults := s.storeResultsOnFile(ctx, t, data)
	if errResults != nil {
		return errResults
	}

	return nil
}

func (s *FileSinker) Close() error {
	var errs []string
	for _, f := range []*os.File{s.fReport, s.fResults} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	s.fReport, s.fResults = nil, nil
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (s *FileSinker) storeReportOnFile(ctx context.Context, t time.Time, data []app.NearbyResult) error {
	if s.fReport == nil {
		return errors.New("No report file for storing data")
	}

	w := bufio.NewWriter(s.fReport)
	n4, errWS := w.WriteString(t.Format(time.RFC3339) + " Nearby Flights\n" + strings.Join(report.Lines(data), "\n") + separator)
	if errWS != nil {
		return errWS
	}
	if errFlush := w.Flush(); errFlush != nil {
		return errFlush
	}
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"length": fmt.Sprintf("wrote %d bytes", n4),
	}).Debug("Wrote")

	return nil
}

func (s *FileSinker) storeResultsOnFile(ctx context.Context, t time.Time, data []app.NearbyResult) error {
	if s.fResults == nil {
		return errors.New("No results file for storing data")
	}

	Marshal, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(s.fResults)
	n4, errWS := w.WriteString(t.Format(time.RFC3339) + " Results\n" + string(Marshal) + separator)
	if errWS != nil {
		return errWS
	}
	if errFlush := w.Flush(); errFlush != nil {
		return errFlush
	}
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"number of Flights": len(data),
		"length":            fmt.Sprintf("wrote %d bytes", n4),
	}).Debug("Wrote")

	return nil
}
