// Package profilers adds profiling flags to the binaries: the searches are CPU and memory
// bound, and these are the tools to see where the time and the nodes go.
//
// Flags:
//
//   - -prof=<port>: serves net/http/pprof on localhost:<port>, and keeps the program alive at
//     the end until it is interrupted, so the final heap can be inspected.
//   - -cpu_profile=<file>: CPU profile of the whole run.
//   - -mem_profile=<file>: heap profile written at the end of the run.
//   - -trace=<file>: execution trace, useful to see the parallel matches of a tournament.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"slices"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagHTTPPort   = flag.Int("prof", -1, "If >= 0, serve the pprof HTTP handlers on this port.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write a CPU profile to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write a heap profile to `file` on exit.")
	flagTrace      = flag.String("trace", "", "Write an execution trace to `file`.")
)

// Start the profilers configured by the flags. The returned stop function finishes them
// and must be called before main returns, typically deferred.
//
// Errors setting up the profilers are fatal.
func Start(ctx context.Context) (stop func()) {
	var stops []func()
	if *flagCPUProfile != "" {
		stops = append(stops, mustStart(startCPUProfile(*flagCPUProfile)))
	}
	if *flagTrace != "" {
		stops = append(stops, mustStart(startTrace(*flagTrace)))
	}
	if *flagMemProfile != "" {
		stops = append(stops, func() {
			if err := writeHeapProfile(*flagMemProfile); err != nil {
				klog.Errorf("%+v", err)
			}
		})
	}
	if *flagHTTPPort >= 0 {
		stops = append(stops, serveHTTP(ctx, fmt.Sprintf("localhost:%d", *flagHTTPPort)))
	}
	return func() {
		// Last started, first stopped: the HTTP server outlives the profiles.
		for _, fn := range slices.Backward(stops) {
			fn()
		}
	}
}

func mustStart(stop func(), err error) func() {
	if err != nil {
		klog.Fatalf("%+v", err)
	}
	return stop
}

// startCPUProfile starts profiling the CPU into path.
func startCPUProfile(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating CPU profile")
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "starting CPU profile")
	}
	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			klog.Errorf("closing CPU profile %q: %v", path, err)
		}
	}, nil
}

// startTrace starts the execution tracer into path.
func startTrace(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating trace")
	}
	if err = trace.Start(f); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "starting trace")
	}
	return func() {
		trace.Stop()
		if err := f.Close(); err != nil {
			klog.Errorf("closing trace %q: %v", path, err)
		}
	}, nil
}

// writeHeapProfile writes the live heap, after a garbage collection, to path.
func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating memory profile")
	}
	runtime.GC()
	err = pprof.WriteHeapProfile(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return errors.Wrapf(err, "writing memory profile %q", path)
}

// serveHTTP serves the default mux, where net/http/pprof registers itself, on addr.
// The returned function blocks until ctx is done, unless ctx is already done.
func serveHTTP(ctx context.Context, addr string) (wait func()) {
	server := &http.Server{Addr: addr}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("pprof HTTP server: %v", err)
		}
	}()
	fmt.Printf("Profiler at http://%s/debug/pprof, e.g.: go tool pprof http://%s/debug/pprof/heap\n", addr, addr)
	return func() {
		if ctx.Err() == nil {
			runtime.GC()
			fmt.Printf("Finished: profiler kept alive at http://%s/debug/pprof, interrupt (Ctrl+C) to exit.\n", addr)
			<-ctx.Done()
		}
		_ = server.Close()
	}
}
