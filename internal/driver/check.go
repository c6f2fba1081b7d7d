package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"paracell/internal/diag"
	"paracell/internal/observ"
	"paracell/internal/source"
	"paracell/internal/trace"
)

// SourceExt is the extension of flow source files.
const SourceExt = ".flow"

// CheckResult aggregates a check over one file or a directory.
type CheckResult struct {
	FileSet *source.FileSet
	// Files are sorted by path.
	Files []*FileResult
	// Bag holds every file's diagnostics, sorted by file then position.
	Bag    *diag.Bag
	Timing observ.Report
}

// Broken reports whether any file failed.
func (r *CheckResult) Broken() bool {
	for _, f := range r.Files {
		if f.Broken() {
			return true
		}
	}
	return false
}

// Check runs the full pipeline on a .flow file or on every .flow file under a directory.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return CheckDir(ctx, path, opts)
	}
	return checkFiles(ctx, []string{path}, opts)
}

// CheckDir checks every .flow file under dir in parallel.
func CheckDir(ctx context.Context, dir string, opts Options) (*CheckResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if opts.BaseDir == "" {
		opts.BaseDir = dir
	}
	return checkFiles(ctx, files, opts)
}

// ListSourceFiles returns the sorted .flow files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func checkFiles(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopePass, "check")
	defer span.End("")

	// Загружаем заранее: FileID растут в порядке путей, и Bag.Sort сохраняет этот порядок.
	fileSet := source.NewFileSet()
	results := make([]*FileResult, len(paths))
	pending := make([]int, 0, len(paths))
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			results[i] = loadFailure(fileSet, path, err, opts.MaxDiagnostics)
			emit(opts.Progress, Event{File: displayPath(path, opts.BaseDir), Status: StatusError, Err: err})
			continue
		}
		results[i] = &FileResult{Path: path, FileID: id}
		pending = append(pending, i)
		emit(opts.Progress, Event{File: displayPath(path, opts.BaseDir), Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(pending))))
	for _, i := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file := fileSet.Get(results[i].FileID)
			start := time.Now()
			res := checkOne(gctx, file, opts)
			results[i] = res
			evt := Event{File: displayPath(file.Path, opts.BaseDir), Status: lastStatus(res), Err: res.Err, Elapsed: time.Since(start)}
			emit(opts.Progress, evt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &CheckResult{FileSet: fileSet, Files: results, Bag: diag.NewBag(0)}
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		out.Bag.Merge(r.Bag)
		reports = append(reports, r.Timing)
	}
	out.Bag.Sort()
	out.Timing = observ.Merge(reports...)
	span.WithExtra("files", fmt.Sprint(len(results)))
	return out, nil
}

// checkOne consults the disk cache before running the pipeline. Only
// diagnostics are cached, so a hit carries no tree or IR.
func checkOne(ctx context.Context, file *source.File, opts Options) *FileResult {
	if opts.Cache == nil {
		return runFile(ctx, file, opts)
	}
	key := Key(file.Hash)
	var payload DiskPayload
	if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
		trace.Point(ctx, trace.ScopeFile, "cache-hit", file.Path)
		bag := diag.NewBag(opts.MaxDiagnostics)
		for _, d := range payload.Diagnostics {
			bag.Add(d.WithFile(file.ID))
		}
		return &FileResult{Path: file.Path, FileID: file.ID, Bag: bag, Cached: true}
	}

	res := runFile(ctx, file, opts)
	payload = DiskPayload{
		Path:        file.Path,
		Broken:      res.Broken(),
		Diagnostics: res.Bag.Items(),
	}
	if res.IR != nil {
		payload.Decls = len(res.IR.Decls)
	}
	if err := opts.Cache.Put(key, &payload); err != nil {
		// кеш не критичен: проверка уже прошла, только предупреждаем
		diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file.ID}, "cache write failed: "+err.Error()).Emit()
	}
	return res
}

func displayPath(path, base string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

type timingPayload struct {
	Kind    string               `json:"kind"`
	Files   int                  `json:"files"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AddTimingDiagnostic appends an OBS6001 info diagnostic carrying the run's
// timings as a JSON note. It anchors on a virtual "<timings>" file.
func (r *CheckResult) AddTimingDiagnostic() {
	data, err := json.Marshal(timingPayload{Kind: "check", Files: len(r.Files), TotalMS: r.Timing.TotalMS, Phases: r.Timing.Phases})
	if err != nil {
		return
	}
	id := r.FileSet.AddVirtual("<timings>", nil)
	d := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  fmt.Sprintf("timings (check): total %.2f ms over %d files", r.Timing.TotalMS, len(r.Files)),
		Primary:  source.Span{File: id},
		Notes:    []diag.Note{{Span: source.Span{File: id}, Msg: string(data)}},
	}
	if !r.Bag.Add(d) {
		overflow := diag.NewBag(1)
		overflow.Add(d)
		r.Bag.Merge(overflow)
	}
}
