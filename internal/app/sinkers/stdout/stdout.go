package stdout

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/report"
	"github.com/sirupsen/logrus"
)

type StdOutSinker struct {
	Log *logrus.Logger
	Out io.Writer
}

func New(log *logrus.Logger) app.Sinker {
	return &StdOutSinker{Log: log, Out: os.Stdout}
}

func (s *StdOutSinker) Init(ctx context.Context) error {
	//Nothing to do here
	return nil
}

func (s *StdOutSinker) Sink(ctx context.Context, t time.Time, data []app.NearbyResult) error {
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"snapshot":          t.Format(time.RFC3339),
		"number of Flights": len(data),
	}).Info("========Nearby Flights seen=============")

	_, err := report.Write(s.Out, data)
	return err
}

func (s *StdOutSinker) Close() error {
	return nil
}
