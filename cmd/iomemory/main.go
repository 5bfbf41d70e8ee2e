// Command iomemory loads N-Quads files into an in-memory store, and then serves or exports it.
package main

//spellchecker:words errors flag strings github iomemory internal exporter loader status viewer browser profile pkglib
import (
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/loader"
	"github.com/FAU-CDI/iomemory/internal/status"
	"github.com/FAU-CDI/iomemory/internal/viewer"
	"github.com/pkg/browser"
	"github.com/pkg/profile"
	"github.com/tkw1536/pkglib/perf"
)

// cspell:words nquads

const usage = "Usage: iomemory [-help] [...flags] [/path/to/nquads | /path/to/directory ...]"

var errMultipleExports = errors.New("at most one of -query, -nquads, -turtle, -sqlite and -mysql may be given")

func main() {
	st := status.New(os.Stderr, debug)

	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}

	handler := &viewer.Viewer{Status: st, ReadOnly: readOnly}
	if debugServer != "" {
		go listenDebug(st)
	}

	export, err := selectExport()
	if err != nil {
		st.Log(usage)
		st.LogFatal("parse arguments", err)
	}

	// find the input files
	var files []string
	if len(nArgs) > 0 {
		files, err = loader.FindSources(nArgs...)
		if err != nil {
			st.Log(usage)
			st.LogFatal("find sources", err)
		}
	} else if export != nil {
		st.Log(usage)
		st.LogFatal("find sources", loader.ErrNoInput)
	}

	// start listening, so that the progress can be queried during loading
	done := make(chan struct{})
	if export == nil {
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			st.LogFatal("listen", err)
		}
		st.Log("listen", "addr", listener.Addr().String())

		go func() {
			defer close(done)

			server := http.Server{
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			if err := server.Serve(listener); err != nil {
				st.LogError("serve", err)
			}
		}()

		if openBrowser {
			url := "http://" + browserHost(listener.Addr())
			if err := browser.OpenURL(url); err != nil {
				st.LogError("open browser", err, "url", url)
			}
		}
	} else {
		close(done)
	}

	store, err := openStore(st)
	if err != nil {
		st.LogFatal("open store", err)
	}

	for _, file := range files {
		st.Log("loading file", "path", file)
		if _, err := loader.LoadFile(store, file, st); err != nil {
			st.LogFatal("load", err)
		}
	}
	terms, err := store.Terms()
	if err != nil {
		st.LogFatal("count terms", err)
	}
	st.Log("finished loading", "size", store.Size(), "terms", terms, "stats", store.Stats())

	if export != nil {
		defer func() {
			if err := store.Close(); err != nil {
				st.LogError("close store", err)
			}
		}()
		if err := export(store, st); err != nil {
			st.LogFatal("export", err)
		}
		st.Log("finished", "took", st.Diff(), "now", perf.Now())
		return
	}

	defer func() {
		if err := handler.Close(); err != nil {
			st.LogError("close store", err)
		}
	}()

	if err := st.DoStage(status.StageServe, func() error {
		handler.Serve(store)
		return nil
	}); err != nil {
		st.LogFatal("serve", err)
	}
	st.Log("finished", "took", st.Diff(), "now", perf.Now())
	st.Close()

	<-done
}

// openStore opens the store described by the configuration file and flags.
func openStore(st *status.Status) (*iomemory.Store, error) {
	var config loader.Config
	if configPath != "" {
		var err error
		config, err = loader.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}

	if cache != "" {
		config.Cache = cache
	}
	if defaultContext != "" {
		config.DefaultContext = defaultContext
	}

	if config.Cache != "" {
		st.Log("caching labels on-disk", "path", config.Cache)
	}
	return config.Open()
}

// browserHost returns a host to open in the browser for the given listening address.
func browserHost(addr net.Addr) string {
	host := addr.String()
	if tcp, ok := addr.(*net.TCPAddr); ok && tcp.IP.IsUnspecified() {
		host = fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return strings.TrimSuffix(host, "/") + "/api/v1"
}

// ===================

var nArgs []string

var addr = ":3000"
var readOnly bool
var openBrowser bool

var configPath string
var cache string
var defaultContext string

var query bool
var nquadsPath string
var turtlePath string
var sqlite string
var mysql string
var sqlTable = ""
var sqlBatchSize = 1000

var subject, predicate, object, graph string

var debug bool
var debugServer string
var debugProfile string

func init() {
	flag.StringVar(&addr, "addr", addr, "serve the store at the given address")
	flag.BoolVar(&readOnly, "read-only", readOnly, "reject requests that modify the store")
	flag.BoolVar(&openBrowser, "open", openBrowser, "open the served api in a browser")

	flag.StringVar(&configPath, "config", configPath, "read configuration from the given yaml file")
	flag.StringVar(&cache, "cache", cache, "cache labels in the given directory as opposed to memory")
	flag.StringVar(&defaultContext, "context", defaultContext, "default context of the store")

	flag.BoolVar(&query, "query", query, "write matching triples as nquads to standard output and exit")
	flag.StringVar(&nquadsPath, "nquads", nquadsPath, "export matching triples as nquads to path and exit")
	flag.StringVar(&turtlePath, "turtle", turtlePath, "export matching triples of a single context as turtle to path and exit")
	flag.StringVar(&sqlite, "sqlite", sqlite, "export matching triples into the sqlite database at path and exit")
	flag.StringVar(&mysql, "mysql", mysql, "export matching triples into the mysql database with the given dsn and exit")
	flag.StringVar(&sqlTable, "table", sqlTable, "name of table to export into")
	flag.IntVar(&sqlBatchSize, "batch", sqlBatchSize, "number of rows to insert into the database at once")

	flag.StringVar(&subject, "s", subject, "only export or query triples with this subject")
	flag.StringVar(&predicate, "p", predicate, "only export or query triples with this predicate")
	flag.StringVar(&object, "o", object, "only export or query triples with this object")
	flag.StringVar(&graph, "g", graph, "only export or query triples in this context")

	flag.BoolVar(&debug, "debug", debug, "enable debug logging")
	flag.StringVar(&debugServer, "debug-listen", debugServer, "start a profiling server on the given address")
	flag.StringVar(&debugProfile, "profile", debugProfile, "write a cpu profile to the given directory")

	flag.Parse()
	nArgs = flag.Args()
}
