package county

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
)

type httpHandler struct {
	scope    County
	delegate http.Handler
	log      Logger

	codes    map[int]County
	codesMtx sync.RWMutex
}

// NewStatHandler returns an http handler counting responses by status code
// below scope: a 404 increments scope's child "404". The total of scope is
// therefore the number of requests served. Hijacked connections are
// counted as 101.
//
// Failures to materialize a status counter are logged with the Logger of
// the Tree scope belongs to. NewStatHandler panics if scope is a wildcard
// selection, which cannot create the status counters.
func NewStatHandler(scope County, handler http.Handler) http.Handler {
	t, ok := scope.(traversable)
	if !ok {
		panic(fmt.Sprintf("county: stat handler scope %s is not a single node", scope.Path()))
	}
	return &httpHandler{
		scope:    scope,
		delegate: handler,
		log:      t.origin().tree.log,
		codes:    map[int]County{},
	}
}

func (h *httpHandler) counter(code int) County {
	h.codesMtx.RLock()
	c := h.codes[code]
	h.codesMtx.RUnlock()

	if c != nil {
		return c
	}

	h.codesMtx.Lock()
	defer h.codesMtx.Unlock()
	if c = h.codes[code]; c == nil {
		var err error
		if c, err = h.scope.GetKey(CounterKey{strconv.Itoa(code)}); err != nil {
			h.log.Errorf("stat handler: counting status %d: %s", code, err)
			return nil
		}
		h.codes[code] = c
	}
	return c
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw, wrapped := h.wrapResponse(w)
	h.delegate.ServeHTTP(wrapped, r)
	if !rw.headerWritten {
		// nothing written, net/http replies 200
		rw.count(http.StatusOK)
	}
}

type responseWriter struct {
	http.ResponseWriter

	headerWritten bool
	handler       *httpHandler
}

func (rw *responseWriter) count(code int) {
	if c := rw.handler.counter(code); c != nil {
		c.Increment()
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.headerWritten {
		return
	}

	rw.headerWritten = true
	rw.count(code)
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap gives http.ResponseController access to the wrapped writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

var (
	_ http.Handler        = (*httpHandler)(nil)
	_ http.ResponseWriter = (*responseWriter)(nil)
)
