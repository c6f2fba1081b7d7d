package driver

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"paracell/internal/ast"
	"paracell/internal/diag"
	"paracell/internal/lexer"
	"paracell/internal/observ"
	"paracell/internal/parser"
	"paracell/internal/sem"
	"paracell/internal/source"
	"paracell/internal/symbols"
	"paracell/internal/trace"
)

// Options configures a pipeline run.
type Options struct {
	// MaxDiagnostics caps each file's bag; 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds parallel files; <= 0 means GOMAXPROCS.
	Jobs int
	// Stop is the last stage to run; empty means StageResolve.
	Stop     Stage
	Cache    *DiskCache
	Progress ProgressSink
	// BaseDir makes progress paths relative.
	BaseDir string
}

func (o Options) stop() Stage {
	if o.Stop == "" {
		return StageResolve
	}
	return o.Stop
}

func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0
	}
	return n
}

// FileResult is everything the pipeline produced for one file. Fields past
// the last stage that ran are nil.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Builder *ast.Builder
	ASTFile ast.FileID
	IR      *sem.SourceFile
	Symbols *symbols.Result
	Bag     *diag.Bag
	Timing  observ.Report
	// Err is the structural or resolution error that stopped the file, if any.
	Err    error
	Cached bool
}

// Broken reports whether the file produced any error diagnostic.
func (r *FileResult) Broken() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

// runFile drives one file through parse, lower and resolve. Every stage
// reports into the file's own bag; a stage with errors ends the run.
func runFile(ctx context.Context, file *source.File, opts Options) *FileResult {
	span, ctx := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)
	res := &FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}
	rep := diag.BagReporter{Bag: res.Bag}
	timer := observ.NewTimer()
	defer func() {
		res.Timing = timer.Report()
		span.WithExtra("diags", fmt.Sprint(res.Bag.Len())).End(string(lastStatus(res)))
	}()

	display := displayPath(file.Path, opts.BaseDir)
	stage := func(s Stage, fn func() error) bool {
		emit(opts.Progress, Event{File: display, Stage: s, Status: StatusWorking})
		st, _ := trace.Start(ctx, trace.ScopeNode, string(s))
		idx := timer.Begin(string(s))
		err := fn()
		timer.End(idx, "")
		st.End("")
		if err != nil && res.Err == nil {
			res.Err = err
		}
		return err == nil && !res.Bag.HasErrors()
	}

	res.Builder = ast.NewBuilder(ast.Hints{}, nil)
	ok := stage(StageParse, func() error {
		lx := lexer.New(file, lexer.Options{Reporter: rep})
		pr := parser.ParseFile(lx, res.Builder, parser.Options{Reporter: rep, MaxErrors: opts.maxErrors()})
		res.ASTFile = pr.File
		return nil
	})
	if !ok || opts.stop() == StageParse {
		return res
	}

	ok = stage(StageLower, func() error {
		ir, err := sem.LowerFile(res.Builder, res.ASTFile)
		if err != nil {
			var se *sem.Error
			if errors.As(err, &se) {
				se.Report(rep)
			}
			return err
		}
		res.IR = ir
		return nil
	})
	if !ok || opts.stop() == StageLower {
		return res
	}

	stage(StageResolve, func() error {
		out, err := symbols.Resolve(res.IR, symbols.Options{Strings: res.Builder.Strings, Reporter: rep})
		res.Symbols = &out
		return err
	})
	return res
}

func lastStatus(r *FileResult) Status {
	switch {
	case r.Cached:
		return StatusCached
	case r.Broken():
		return StatusError
	default:
		return StatusDone
	}
}

// loadFailure records an unreadable path as an empty virtual file so the
// diagnostic still has a location.
func loadFailure(fs *source.FileSet, path string, err error, maxDiagnostics int) *FileResult {
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(maxDiagnostics)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()).Emit()
	return &FileResult{Path: path, FileID: id, Bag: bag, Err: err}
}
