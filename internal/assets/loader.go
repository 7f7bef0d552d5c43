package assets

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
)

// Options configures a Loader.
type Options struct {
	Workers int
	Queue   int
	Logger  logr.Logger
	// OnResult, if set, runs on the draining goroutine for every finished
	// request. err is a *LoadError on failure.
	OnResult func(path string, err error)
}

type job struct {
	path string
	done func(*Texture)
}

type result struct {
	job
	tex *Texture
	err error
}

// Loader decodes textures on worker goroutines. Completions are buffered
// until Drain, so callbacks always run on the goroutine that calls Drain.
type Loader struct {
	root     string
	log      logr.Logger
	onResult func(string, error)

	jobs    chan job
	results chan result
	pending atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader starts the decode workers. Relative paths are resolved against root.
func NewLoader(root string, opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.Queue <= 0 {
		opts.Queue = 64
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader{
		root:     root,
		log:      opts.Logger.WithName("assets"),
		onResult: opts.OnResult,
		jobs:     make(chan job, opts.Queue),
		results:  make(chan result, opts.Queue),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < opts.Workers; i++ {
		l.wg.Add(1)
		go l.work()
	}
	return l
}

// Load requests path asynchronously. It never blocks; done runs during a
// later Drain and only if decoding succeeded.
func (l *Loader) Load(path string, done func(*Texture)) {
	if path == "" {
		return
	}
	l.pending.Add(1)
	j := job{path: path, done: done}
	select {
	case l.jobs <- j:
	default:
		go func() {
			select {
			case l.jobs <- j:
			case <-l.ctx.Done():
			}
		}()
	}
}

func (l *Loader) work() {
	defer l.wg.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case j := <-l.jobs:
			full := j.path
			if !filepath.IsAbs(full) && l.root != "" {
				full = filepath.Join(l.root, full)
			}
			tex, err := Decode(full)
			select {
			case l.results <- result{job: j, tex: tex, err: err}:
			case <-l.ctx.Done():
				return
			}
		}
	}
}

// Drain applies every completed request and returns how many were handled.
func (l *Loader) Drain() int {
	n := 0
	for {
		select {
		case r := <-l.results:
			l.pending.Add(-1)
			n++
			if r.err != nil {
				l.log.Error(r.err, "texture unavailable, keeping fallback color", "path", r.path)
			} else {
				l.log.V(1).Info("texture loaded", "path", r.path, "width", r.tex.Width, "height", r.tex.Height)
				if r.done != nil {
					r.done(r.tex)
				}
			}
			if l.onResult != nil {
				l.onResult(r.path, r.err)
			}
		default:
			return n
		}
	}
}

// Pending reports requests not yet drained.
func (l *Loader) Pending() int { return int(l.pending.Load()) }

// Close stops the workers. Undrained results are discarded.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
