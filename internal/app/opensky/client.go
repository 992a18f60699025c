// Package opensky fetches aircraft state vectors from the OpenSky Network
// REST API for a bounding box.
package opensky

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	// ErrTransport marks failures to obtain a response: timeouts,
	// unreachable host, non-success status.
	ErrTransport = errors.New("opensky transport failure")

	// ErrMalformedPayload marks a response that could not be decoded.
	ErrMalformedPayload = errors.New("opensky malformed payload")
)

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("opensky returned status %d: %s", e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrTransport) hold for status errors.
func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}

// DefaultTimeout is used when New is given a non-positive timeout.
const DefaultTimeout = 10 * time.Second

// Client queries the /states/all endpoint.
type Client struct {
	Log        *logrus.Logger
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New builds a client. timeout bounds every HTTP exchange on top of the
// caller's context deadline, DefaultTimeout when not positive.
func New(log *logrus.Logger, conf Configuration, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Inf
	if conf.MinInterval > 0 {
		limit = rate.Every(time.Duration(conf.MinInterval) * time.Second)
	}

	return &Client{
		Log:        log,
		endpoint:   strings.TrimRight(conf.Endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// States returns the state vectors of all aircraft inside bbox.
func (c *Client) States(ctx context.Context, bbox app.BoundingBox, extended bool) (*app.StateSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrTransport, err)
	}

	params := url.Values{}
	params.Set("lamin", fmt.Sprintf("%.5f", bbox.LatMin))
	params.Set("lamax", fmt.Sprintf("%.5f", bbox.LatMax))
	params.Set("lomin", fmt.Sprintf("%.5f", bbox.LonMin))
	params.Set("lomax", fmt.Sprintf("%.5f", bbox.LonMax))
	if extended {
		params.Set("extended", "1")
	}
	urlStr := c.endpoint + "/states/all?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	c.Log.WithContext(ctx).WithFields(logrus.Fields{
		"url": urlStr,
	}).Debug("Fetching OpenSky states")

	resp, errHTTPGet := c.httpClient.Do(req)
	if errHTTPGet != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, errHTTPGet)
	}
	defer func() {
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var data statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	c.Log.WithContext(ctx).WithFields(logrus.Fields{
		"number of States": len(data.States),
	}).Debug("OpenSky states received")

	return data.snapshot(), nil
}
