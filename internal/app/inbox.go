// Package app composes the poll, dedup and render pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwafle/unread/internal/dedup"
	"github.com/jwafle/unread/internal/logging"
	"github.com/jwafle/unread/internal/message"
	"github.com/jwafle/unread/internal/render"
	"github.com/jwafle/unread/internal/transport"
)

// ErrSurfaceMissing is returned by Bootstrap when there is no table.
var ErrSurfaceMissing = render.ErrSurfaceMissing

// Options configure an Inbox.
type Options struct {
	Server       string        // base URL; message.UnreadPath is appended
	Interval     time.Duration // 0 = transport.DefaultInterval
	SubjectLimit int
	Location     *time.Location
	Logger       *zerolog.Logger // nil = discard
}

// Inbox owns one dedup store and renderer and starts the poller once a
// rendering surface is available.
type Inbox struct {
	endpoint string
	store    *dedup.Store
	renderer *render.Renderer
	poll     transport.Config
	logger   zerolog.Logger
	stream   *transport.Stream
}

// NewInbox validates the server URL and builds the pipeline.
func NewInbox(opts Options) (*Inbox, error) {
	endpoint, err := Endpoint(opts.Server)
	if err != nil {
		return nil, err
	}

	component := func(name string) *zerolog.Logger {
		return logging.ComponentOf(opts.Logger, name)
	}

	poll := transport.Config{
		Interval: opts.Interval,
		Logger:   component("poller"),
	}

	store := dedup.New()
	return &Inbox{
		endpoint: endpoint,
		store:    store,
		renderer: render.NewRenderer(store, render.Options{
			SubjectLimit: opts.SubjectLimit,
			Location:     opts.Location,
			Logger:       component("renderer"),
		}),
		poll:   poll,
		logger: *component("bootstrap"),
	}, nil
}

// Endpoint joins server with the unread messages path.
func Endpoint(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid server %q: want an http(s) URL", server)
	}
	return u.JoinPath(message.UnreadPath).String(), nil
}

// URL returns the polled endpoint.
func (in *Inbox) URL() string { return in.endpoint }

// Seen returns the number of messages rendered so far.
func (in *Inbox) Seen() int { return in.store.Len() }

// Bootstrap attaches surface and subscribes to the poller. A nil surface is
// logged and nothing is started.
func (in *Inbox) Bootstrap(ctx context.Context, surface render.Surface) (<-chan transport.Batch, error) {
	if surface == nil {
		in.logger.Error().Err(ErrSurfaceMissing).Msg("not subscribing to unread messages")
		return nil, ErrSurfaceMissing
	}
	if in.stream != nil {
		return nil, errors.New("inbox already bootstrapped")
	}

	in.renderer.Attach(surface)
	stream, err := transport.Poll(ctx, in.endpoint, &in.poll)
	if err != nil {
		return nil, err
	}
	in.stream = stream
	in.logger.Info().Str("endpoint", in.endpoint).Dur("interval", in.interval()).Msg("polling for unread messages")
	return stream.Batches(), nil
}

// Apply renders every message of b in list order and returns the number of
// rows inserted. Each row goes on top, so the last message of a batch ends
// up first.
func (in *Inbox) Apply(b transport.Batch) int {
	n := 0
	for _, m := range b.Messages {
		if in.renderer.Render(m) {
			n++
		}
	}
	return n
}

// Close stops polling.
func (in *Inbox) Close() {
	if in.stream != nil {
		in.stream.Close()
	}
}

func (in *Inbox) interval() time.Duration {
	if in.poll.Interval > 0 {
		return in.poll.Interval
	}
	return transport.DefaultInterval
}
