package driver

import (
	"context"

	"paracell/internal/diag"
	"paracell/internal/lexer"
	"paracell/internal/source"
	"paracell/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path into a token slice ending with EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{FileSet: fs, File: file, Tokens: lx.All(), Bag: bag}, nil
}

// SingleResult pairs one file's pipeline output with its FileSet.
type SingleResult struct {
	FileSet *source.FileSet
	*FileResult
}

// Parse runs the pipeline on path up to the surface tree.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*SingleResult, error) {
	return runSingle(ctx, path, Options{MaxDiagnostics: maxDiagnostics, Stop: StageParse})
}

// Lower runs the pipeline on path up to the Semantic IR.
func Lower(ctx context.Context, path string, maxDiagnostics int) (*SingleResult, error) {
	return runSingle(ctx, path, Options{MaxDiagnostics: maxDiagnostics, Stop: StageLower})
}

func runSingle(ctx context.Context, path string, opts Options) (*SingleResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return &SingleResult{FileSet: fs, FileResult: runFile(ctx, fs.Get(fileID), opts)}, nil
}
