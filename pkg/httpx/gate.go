package httpx

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/forum/pkg/slogx"
)

// Stage is one step of the request gate. It either calls next exactly once,
// possibly with a request carrying a richer context, or returns an error and
// leaves next alone.
type Stage func(r *http.Request, next func(*http.Request)) error

// Gate runs stages in order in front of a handler. The first stage to return
// an error short-circuits the rest: later stages and the handler never run,
// and the error is written as the response.
func Gate(stages ...Stage) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			runStages(stages, w, r, h)
		})
	}
}

func runStages(stages []Stage, w http.ResponseWriter, r *http.Request, h http.Handler) {
	if len(stages) == 0 {
		h.ServeHTTP(w, r)
		return
	}

	err := stages[0](r, func(next *http.Request) {
		runStages(stages[1:], w, next, h)
	})
	if err != nil {
		writeStageError(w, r, err)
	}
}

// writeStageError renders err. Anything other than *Error is a bug in a
// stage, so it is logged and answered with a generic 500.
func writeStageError(w http.ResponseWriter, r *http.Request, err error) {
	var gerr *Error
	if !errors.As(err, &gerr) {
		slogx.FromContext(r.Context()).Error("gate stage failed", "err", err)
		gerr = errGateMisconfigured
	}
	gerr.Write(w)
}
