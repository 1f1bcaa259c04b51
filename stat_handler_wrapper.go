package county

import (
	"bufio"
	"net"
	"net/http"
)

// unwrapper is the counting writer as seen by handlers. Embedding it keeps
// Unwrap available to http.ResponseController.
type unwrapper interface {
	http.ResponseWriter
	Unwrap() http.ResponseWriter
}

// flushWriter counts an implicit 200 before flushing.
type flushWriter struct {
	rw *responseWriter
	f  http.Flusher
}

func (fw flushWriter) Flush() {
	if !fw.rw.headerWritten {
		fw.rw.WriteHeader(http.StatusOK)
	}
	fw.f.Flush()
}

// hijackWriter counts a successfully hijacked connection as 101.
type hijackWriter struct {
	rw *responseWriter
	h  http.Hijacker
}

func (hw hijackWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, buf, err := hw.h.Hijack()
	if err == nil && !hw.rw.headerWritten {
		hw.rw.headerWritten = true
		hw.rw.count(http.StatusSwitchingProtocols)
	}
	return conn, buf, err
}

// wrapResponse returns the counting writer and the writer handed to the
// delegate, which implements the optional interfaces w implements.
func (h *httpHandler) wrapResponse(w http.ResponseWriter) (*responseWriter, http.ResponseWriter) {
	rw := &responseWriter{
		ResponseWriter: w,
		handler:        h,
	}

	f, canFlush := w.(http.Flusher)
	hj, canHijack := w.(http.Hijacker)
	pusher, canPush := w.(http.Pusher)

	flusher := flushWriter{rw: rw, f: f}
	hijacker := hijackWriter{rw: rw, h: hj}

	if canFlush && canHijack && canPush {
		return rw, struct {
			unwrapper
			http.Flusher
			http.Hijacker
			http.Pusher
		}{rw, flusher, hijacker, pusher}
	} else if canFlush && canHijack {
		return rw, struct {
			unwrapper
			http.Flusher
			http.Hijacker
		}{rw, flusher, hijacker}
	} else if canFlush && canPush {
		return rw, struct {
			unwrapper
			http.Flusher
			http.Pusher
		}{rw, flusher, pusher}
	} else if canHijack && canPush {
		return rw, struct {
			unwrapper
			http.Hijacker
			http.Pusher
		}{rw, hijacker, pusher}
	} else if canFlush {
		return rw, struct {
			unwrapper
			http.Flusher
		}{rw, flusher}
	} else if canHijack {
		return rw, struct {
			unwrapper
			http.Hijacker
		}{rw, hijacker}
	} else if canPush {
		return rw, struct {
			unwrapper
			http.Pusher
		}{rw, pusher}
	}

	return rw, rw
}

var (
	_ http.Flusher  = flushWriter{}
	_ http.Hijacker = hijackWriter{}
)
