// Package responsewriter wraps http.ResponseWriter so middleware can read the
// status code and body size after a handler has run.
package responsewriter

import "net/http"

// Recorder captures the status and number of body bytes written.
type Recorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

// Wrap returns w wrapped in a Recorder. If w already is a Recorder it is
// returned unchanged so stacked middleware share one record.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *Recorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *Recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Flush forwards to the underlying writer when it supports flushing.
func (r *Recorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		if !r.wroteHeader {
			r.WriteHeader(http.StatusOK)
		}
		f.Flush()
	}
}

// Status returns the recorded status code (200 if none was written).
func (r *Recorder) Status() int { return r.status }

// Size returns the number of body bytes written.
func (r *Recorder) Size() int { return r.size }

// WroteHeader reports whether a status line has been sent.
func (r *Recorder) WroteHeader() bool { return r.wroteHeader }

// Unwrap supports http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
