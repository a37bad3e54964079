package source

import (
	"fmt"
	"log"
	"sync"

	"github.com/valyala/fasthttp"
)

// defaultReadAhead is the read-ahead buffer size used when a requested
// range is smaller than one read-ahead window; it amortizes the
// request/response overhead of each HTTP range fetch across several
// adjacent tile reads.
const defaultReadAhead = 64 * 1024

// Option configures an HTTPRangeSource.
type Option func(*HTTPRangeSource)

// WithReadAhead overrides the read-ahead window size.
func WithReadAhead(n int) Option {
	return func(s *HTTPRangeSource) {
		if n > 0 {
			s.readAhead = n
		}
	}
}

// WithLogger attaches a logger for range-fetch diagnostics. A nil logger
// (the default) disables logging entirely.
func WithLogger(l *log.Logger) Option {
	return func(s *HTTPRangeSource) {
		s.logger = l
	}
}

// HTTPRangeSource is a RandomReader backed by HTTP range requests against
// a remote blob, with a read-ahead buffer for the sequential-ish access
// pattern of IFD walking and tile fetching.
type HTTPRangeSource struct {
	url    string
	client *fasthttp.Client
	logger *log.Logger

	mu        sync.Mutex
	readAhead int
	bufStart  uint64
	bufEnd    uint64
	buf       []byte
	haveBuf   bool
}

// NewHTTPRangeSource creates a RandomReader over url, fetching byte
// ranges with client (a caller-supplied *fasthttp.Client, reused across
// sources to share connection pooling).
func NewHTTPRangeSource(url string, client *fasthttp.Client, opts ...Option) *HTTPRangeSource {
	s := &HTTPRangeSource{
		url:       url,
		client:    client,
		readAhead: defaultReadAhead,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadRange returns exactly end-start bytes starting at start, serving
// from the read-ahead buffer when possible and issuing a new ranged GET
// otherwise.
func (s *HTTPRangeSource) ReadRange(start, end uint64) ([]byte, error) {
	if end <= start {
		return nil, fmt.Errorf("source: invalid range [%d,%d)", start, end)
	}
	want := end - start

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.haveBuf && start >= s.bufStart && end <= s.bufEnd {
		off := start - s.bufStart
		out := make([]byte, want)
		copy(out, s.buf[off:off+want])
		return out, nil
	}

	fetchEnd := end
	if extra := uint64(s.readAhead); want < extra {
		fetchEnd = start + extra
	}

	data, err := s.fetchRange(start, fetchEnd-1)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("source: range fetch [%d,%d) failed: %v", start, fetchEnd, err)
		}
		return nil, err
	}

	s.buf = data
	s.bufStart = start
	s.bufEnd = start + uint64(len(data))
	s.haveBuf = true

	if uint64(len(data)) < want {
		return nil, &TruncatedReadError{Start: start, End: end, Got: len(data)}
	}
	out := make([]byte, want)
	copy(out, data[:want])
	return out, nil
}

// fetchRange issues a single ranged GET for [start, end] (inclusive).
func (s *HTTPRangeSource) fetchRange(start, end uint64) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderRange, fmt.Sprintf("bytes=%d-%d", start, end))

	if err := s.client.Do(req, resp); err != nil {
		return nil, err
	}

	status := resp.StatusCode()
	if status != fasthttp.StatusPartialContent && status != fasthttp.StatusOK {
		return nil, fmt.Errorf("source: unexpected status %d fetching %s", status, s.url)
	}

	body := resp.Body()
	out := make([]byte, len(body))
	copy(out, body)
	if s.logger != nil {
		s.logger.Printf("source: fetched [%d,%d] (%d bytes) from %s", start, end, len(out), s.url)
	}
	return out, nil
}
