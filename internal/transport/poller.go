package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/context/ctxhttp"

	"github.com/jwafle/unread/internal/message"
)

// DefaultInterval is the time between ticks.
const DefaultInterval = 5 * time.Second

// ErrFetch wraps every failure to turn a tick into a batch.
var ErrFetch = errors.New("fetch unread messages")

// Batch is the result of one tick. Messages is empty when the endpoint had
// nothing new or the request failed.
type Batch struct {
	Seq      int // tick number, starting at 1
	Messages []message.Message
}

// Stream exposes a read-only batch channel.
type Stream struct {
	batchCh chan Batch // closed when the poll loop exits
	cancel  context.CancelFunc
}

// Batches returns the channel on which callers receive batches, oldest tick
// first.
func (s *Stream) Batches() <-chan Batch { return s.batchCh }

// Close cancels the poll loop and any in-flight request.
func (s *Stream) Close() { s.cancel() }

// --------------------------------------------------------------------

// Config tweaks behaviour; zero-value is sane.
type Config struct {
	Interval time.Duration  // 0 = DefaultInterval
	Client   *http.Client   // nil = http.DefaultClient
	Logger   *zerolog.Logger // nil = discard
}

// Poll starts a background goroutine that
//   - requests endpoint immediately, then once per Interval
//   - cancels the previous request whenever a new tick fires
//   - delivers only the latest tick's batch on Stream.Batches
//
// Failures are logged and delivered as empty batches. A list with some
// undecodable elements is logged once and delivered without them. The stream
// itself never ends until ctx is cancelled or Close is called.
func Poll(ctx context.Context, endpoint string, cfg *Config) (*Stream, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("transport: invalid poll endpoint %q", endpoint)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		batchCh: make(chan Batch, 16),
		cancel:  cancel,
	}

	go func() {
		defer close(s.batchCh)

		results := make(chan Batch)
		inflight := context.CancelFunc(func() {})
		seq := 0

		tick := func() {
			inflight() // supersede the previous request
			seq++
			reqCtx, reqCancel := context.WithCancel(ctx)
			inflight = reqCancel
			go func(seq int) {
				defer reqCancel()
				msgs, err := fetch(reqCtx, client, endpoint)
				if err != nil {
					if reqCtx.Err() != nil {
						return // superseded or shutting down
					}
					logger.Error().Err(err).Str("endpoint", endpoint).Int("tick", seq).
						Int("delivered", len(msgs)).Msg("poll failed")
				}
				select {
				case results <- Batch{Seq: seq, Messages: msgs}:
				case <-reqCtx.Done():
				}
			}(seq)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick()

		for {
			select {
			case <-ctx.Done():
				inflight()
				return
			case <-ticker.C:
				tick()
			case b := <-results:
				if b.Seq != seq {
					continue
				}
				select {
				case s.batchCh <- b:
				case <-ctx.Done():
					inflight()
					return
				}
			}
		}
	}()

	return s, nil
}

// --------------------------------------------------------------------
// Internal helpers

// fetch performs one GET and decodes the body. Messages that decoded are
// returned even when other elements of the list did not.
func fetch(ctx context.Context, client *http.Client, endpoint string) ([]message.Message, error) {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ctxhttp.Do(ctx, client, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrFetch, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	msgs, err := message.Parse(body)
	if err != nil {
		return msgs, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return msgs, nil
}
