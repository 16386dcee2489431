package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vfmt/internal/diag"
	"vfmt/internal/format"
	"vfmt/internal/observ"
	"vfmt/internal/source"
	"vfmt/internal/trace"
)

// SourceExt is the extension collected from directories.
const SourceExt = ".rs"

// FormatOptions configures a batch run.
type FormatOptions struct {
	Options format.Options
	// Check leaves files alone; Changed reports whether they would change.
	Check bool
	// Stdout returns the canonical text in the results instead of writing.
	Stdout bool
	// Jobs limits the number of files formatted at once; 0 means GOMAXPROCS.
	Jobs int
	// Exclude holds filepath.Match patterns tested against the slash path
	// and the base name of every candidate.
	Exclude        []string
	MaxDiagnostics int
	// Cache, when set, skips files known to be canonical under CacheSalt.
	Cache     *DiskCache
	CacheSalt string
	Timings   bool
	Progress  ProgressObserver
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	// FileSet resolves the spans in Bag.
	FileSet *source.FileSet
	Bag     *diag.Bag
	Timing  *observ.Report
}

// FormatPaths formats the given files and directories. Directories are
// walked for *.rs files. Results come back in path order; per-file
// failures are in FormatResult.Err and do not stop the run.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(ctx, paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "format_paths", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("files", strconv.Itoa(len(files)))
	ctx = trace.WithSpan(ctx, span)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine owns its own index
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatPath(gctx, path, i, len(files), opts)
			return nil
		})
	}
	err = g.Wait()
	span.End("")
	return results, err
}

func formatPath(ctx context.Context, path string, index, total int, opts FormatOptions) FormatResult {
	started := time.Now()
	notify(opts, ProgressEvent{Path: path, Index: index, Total: total, Status: FileStarted})

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file:"+filepath.ToSlash(path), trace.CurrentSpan(ctx).SpanID)
	res := formatFile(trace.WithSpan(ctx, span), path, opts)
	detail := ""
	if res.Err != nil {
		detail = "error: " + res.Err.Error()
	}
	span.WithExtra("changed", strconv.FormatBool(res.Changed)).End(detail)

	status := FileUnchanged
	switch {
	case res.Err != nil:
		status = FileFailed
	case res.Cached:
		status = FileCached
	case res.Changed:
		status = FileChanged
	}
	notify(opts, ProgressEvent{Path: path, Index: index, Total: total, Status: status, Elapsed: time.Since(started)})
	return res
}

func notify(opts FormatOptions, ev ProgressEvent) {
	if opts.Progress != nil {
		opts.Progress(ev)
	}
}

func formatFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	phase := func(name string) func(string) {
		if timer == nil {
			return func(string) {}
		}
		idx := timer.Begin(name)
		return func(note string) { timer.End(idx, note) }
	}

	end := phase("read")
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	end("")
	if err != nil {
		res := FormatResult{Path: path, Err: err, FileSet: source.NewFileSet(), Bag: diag.NewBag(1)}
		res.Bag.Add(diag.NewError(diag.IOReadFailed, source.Span{}, "failed to read file: "+err.Error()))
		return res
	}

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(opts.CacheSalt, raw)
		end = phase("cache")
		entry, ok, cacheErr := opts.Cache.Get(key)
		end("")
		if cacheErr == nil && ok && entry.Canonical && !opts.Stdout {
			return FormatResult{Path: path, Cached: true, FileSet: source.NewFileSet(), Bag: diag.NewBag(1), Timing: report(timer)}
		}
	}

	res := FormatBytes(ctx, path, raw, opts, phase)
	res.Timing = report(timer)
	if res.Err != nil {
		return res
	}

	if !res.Changed && opts.Cache != nil && res.Bag.Len() == 0 {
		// a cache write failure only costs the next run some time
		_ = opts.Cache.Put(key, &CacheEntry{Path: path, Size: len(raw), Canonical: true, Stored: time.Now()})
	}

	if opts.Check || opts.Stdout || !res.Changed {
		return res
	}

	end = phase("write")
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, res.Formatted, mode.Perm()); err != nil {
		res.Err = err
		res.Bag.Add(diag.NewError(diag.IOWriteFailed, source.Span{}, "failed to write file: "+err.Error()))
	}
	end("")
	res.Timing = report(timer)
	res.Formatted = nil
	return res
}

func report(t *observ.Timer) *observ.Report {
	if t == nil {
		return nil
	}
	r := t.Report()
	return &r
}

// FormatBytes formats raw file content read from path (or stdin). The
// on-disk encoding (UTF-16, byte order mark, CRLF) is kept. phase may be
// nil.
func FormatBytes(ctx context.Context, path string, raw []byte, opts FormatOptions, phase func(string) func(string)) FormatResult {
	if phase == nil {
		phase = func(string) func(string) { return func(string) {} }
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	fileSet := source.NewFileSet()
	bag := diag.NewBag(maxDiag)
	res := FormatResult{Path: path, FileSet: fileSet, Bag: bag}

	text, enc, err := decode(raw)
	if err != nil {
		res.Err = err
		bag.Add(diag.NewError(diag.IOEncodingError, source.Span{}, err.Error()))
		return res
	}

	fopts := opts.Options
	fopts.FileName = path
	fopts.Reporter = diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	end := phase("format")
	_, out, err := format.SourceIn(ctx, fileSet, text, fopts)
	end("")
	if err != nil {
		res.Err = err
		if d, ok := format.AsDiagnostic(err); ok {
			bag.Add(d)
		}
		return res
	}

	formatted, err := encode(out.Text, enc)
	if err != nil {
		res.Err = err
		bag.Add(diag.NewError(diag.IOEncodingError, source.Span{}, err.Error()))
		return res
	}
	res.Formatted = formatted
	res.Changed = !bytes.Equal(raw, formatted)
	return res
}

// CollectSourceFiles expands paths the way FormatPaths does: explicit
// files are kept, directories are walked for *.rs files, hidden
// directories and excluded paths are skipped. The result is sorted.
func CollectSourceFiles(ctx context.Context, paths, exclude []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			// an explicit file is formatted whatever its extension
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if excluded(path, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func excluded(path string, patterns []string) bool {
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, slash); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
	}
	return false
}
