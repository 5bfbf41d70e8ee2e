package viewer

// fallback implements an api that reports the current status

//spellchecker:words encoding json errors github iomemory internal status
import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/status"
)

const (
	viewerNotReady     = "Store is still loading, please come back later"
	viewerRetrySeconds = "10"
)

var (
	errReadOnly  = errors.New("store is read-only")
	errBadQuery  = errors.New("invalid request")
	errNoContext = errors.New("missing context")
)

type ProgressMessage struct {
	Message  string          `json:"message"`
	Progress status.Progress `json:"progress"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}

// jsonResponse sends value as json with the given status code.
func jsonResponse(w http.ResponseWriter, code int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(value) // the client may have gone away
}

func (viewer *Viewer) jsonFallback(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Retry-After", viewerRetrySeconds)
	jsonResponse(w, http.StatusServiceUnavailable, ProgressMessage{
		Message:  viewerNotReady,
		Progress: viewer.Status.Progress(),
	})
}

// jsonError sends an error to the client, choosing a status code by the kind of error.
func (viewer *Viewer) jsonError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadQuery), errors.Is(err, errNoContext), errors.Is(err, iomemory.ErrIncomplete), errors.Is(err, iomemory.ErrWildcard):
		code = http.StatusBadRequest
	case errors.Is(err, iomemory.ErrExhausted):
		code = http.StatusInsufficientStorage
	case errors.Is(err, iomemory.ErrClosed):
		code = http.StatusServiceUnavailable
	}

	if code == http.StatusInternalServerError {
		viewer.Status.LogError("request", err)
	}
	jsonResponse(w, code, ErrorMessage{Error: err.Error()})
}
