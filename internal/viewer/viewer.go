// Package viewer implements an http api for a store.
package viewer

//spellchecker:words sync github iomemory internal status gorilla
import (
	"net/http"
	"sync"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/status"
	"github.com/gorilla/mux"
)

// Viewer implements an [http.Handler] that exposes a store as json.
//
// Until a store is passed to Serve, every request is answered with the progress of loading.
// Queries may run concurrently, mutations are serialized against queries.
type Viewer struct {
	Status   *status.Status // status to report progress from, may be nil
	ReadOnly bool           // reject requests that mutate the store

	lock  sync.RWMutex
	store *iomemory.Store

	init sync.Once
	mux  mux.Router
}

// Serve starts serving the given store.
// A previously served store is not closed.
func (viewer *Viewer) Serve(store *iomemory.Store) {
	viewer.lock.Lock()
	defer viewer.lock.Unlock()

	viewer.store = store
}

// Close closes the served store, if any.
func (viewer *Viewer) Close() error {
	if viewer == nil {
		return nil
	}

	viewer.lock.Lock()
	defer viewer.lock.Unlock()

	if viewer.store == nil {
		return nil
	}
	err := viewer.store.Close()
	viewer.store = nil
	return err
}

func (viewer *Viewer) Prepare() {
	viewer.init.Do(func() {
		viewer.mux.HandleFunc("/api/v1", viewer.jsonIndex).Methods(http.MethodGet)
		viewer.mux.HandleFunc("/api/v1/progress", viewer.jsonProgress).Methods(http.MethodGet)
		viewer.mux.HandleFunc("/api/v1/namespaces", viewer.jsonNamespaces).Methods(http.MethodGet)

		viewer.mux.HandleFunc("/api/v1/contexts", viewer.jsonContexts).Methods(http.MethodGet)
		viewer.mux.HandleFunc("/api/v1/contexts", viewer.jsonRegisterContext).Methods(http.MethodPost)
		viewer.mux.HandleFunc("/api/v1/contexts", viewer.jsonRemoveContext).Methods(http.MethodDelete)

		viewer.mux.HandleFunc("/api/v1/triples", viewer.jsonTriples).Methods(http.MethodGet)
		viewer.mux.HandleFunc("/api/v1/triples", viewer.jsonAdd).Methods(http.MethodPost)
		viewer.mux.HandleFunc("/api/v1/triples", viewer.jsonRemove).Methods(http.MethodDelete)

		viewer.mux.HandleFunc("/api/v1/unique/{kind:subjects|predicates|objects}", viewer.jsonUnique).Methods(http.MethodGet)
	})
}

func (viewer *Viewer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer.Prepare()
	viewer.mux.ServeHTTP(w, r)
}

// read calls f with the served store while holding a read lock.
// When no store is served yet, sends the fallback instead and does not call f.
//
// f must not retain any iterator of the store beyond its return.
func (viewer *Viewer) read(w http.ResponseWriter, r *http.Request, f func(store *iomemory.Store) (any, error)) {
	viewer.lock.RLock()
	defer viewer.lock.RUnlock()

	if viewer.store == nil {
		viewer.jsonFallback(w, r)
		return
	}

	result, err := f(viewer.store)
	if err != nil {
		viewer.jsonError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// write is like read, but holds the write lock.
// When the viewer is read-only, the request is rejected.
func (viewer *Viewer) write(w http.ResponseWriter, r *http.Request, f func(store *iomemory.Store) (any, error)) {
	if viewer.ReadOnly {
		jsonResponse(w, http.StatusForbidden, ErrorMessage{Error: errReadOnly.Error()})
		return
	}

	viewer.lock.Lock()
	defer viewer.lock.Unlock()

	if viewer.store == nil {
		viewer.jsonFallback(w, r)
		return
	}

	result, err := f(viewer.store)
	if err != nil {
		viewer.jsonError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, result)
}
