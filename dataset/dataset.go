//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package dataset loads the parties' input columns and public bin
// edges. Each party keeps its columns in a directory as files
// <index>.dat holding one value per line.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/secret"
	"github.com/markkurossi/xtabs/xtabs"
)

// Errors.
var (
	ErrRowCount     = errors.New("row count mismatch")
	ErrNotAscending = xtabs.ErrNotAscending
)

// Config defines the loader configuration.
type Config struct {
	// Self is the local party. The Public party loads both parties'
	// columns for single process simulation.
	Self     secret.Party
	Rows     int
	AliceDir string
	BobDir   string
}

// Loader loads input columns.
type Loader struct {
	cfg Config
}

// NewLoader creates a new loader. A party may configure only its own
// directory.
func NewLoader(cfg Config) (*Loader, error) {
	if cfg.Rows < 1 {
		return nil, errors.Newf("invalid row count %d", cfg.Rows)
	}
	switch cfg.Self {
	case secret.Alice:
		if len(cfg.AliceDir) == 0 {
			return nil, errors.New("alice: no data directory")
		}
		if len(cfg.BobDir) != 0 {
			return nil, errors.New("alice: bob's data directory configured")
		}
	case secret.Bob:
		if len(cfg.BobDir) == 0 {
			return nil, errors.New("bob: no data directory")
		}
		if len(cfg.AliceDir) != 0 {
			return nil, errors.New("bob: alice's data directory configured")
		}
	case secret.Public:
		if len(cfg.AliceDir) == 0 || len(cfg.BobDir) == 0 {
			return nil, errors.New("simulation needs both data directories")
		}
	default:
		return nil, errors.Newf("invalid party %v", cfg.Self)
	}
	return &Loader{
		cfg: cfg,
	}, nil
}

// Rows returns the number of rows in each column.
func (l *Loader) Rows() int {
	return l.cfg.Rows
}

// Owns tests if the loader reads the owner's columns.
func (l *Loader) Owns(owner secret.Party) bool {
	return l.cfg.Self == secret.Public || l.cfg.Self == owner
}

// Path returns the file name of the column.
func (l *Loader) Path(ref ColumnRef) string {
	dir := l.cfg.AliceDir
	if ref.Owner == secret.Bob {
		dir = l.cfg.BobDir
	}
	return filepath.Join(dir, fmt.Sprintf("%d.dat", ref.Index))
}

// Ints reads the integer column. The columns of the peer read as
// zeros.
func (l *Loader) Ints(ref ColumnRef) ([]int64, error) {
	return readColumn[int64](l, ref)
}

// Floats reads the real number column. The columns of the peer read
// as zeros.
func (l *Loader) Floats(ref ColumnRef) ([]float64, error) {
	return readColumn[float64](l, ref)
}

// LoadColumn reads the column and inputs it as secret values owned by
// the column owner.
func LoadColumn[V, B any, C secret.Number](l *Loader,
	arith secret.Arith[V, B, C], ref ColumnRef) ([]V, error) {

	values, err := readColumn[C](l, ref)
	if err != nil {
		return nil, err
	}
	return arith.Input(ref.Owner, values), nil
}

// Edges reads public bin edges from the file. The edges must be
// strictly ascending and define at least one bin.
func Edges[C secret.Number](path string) ([]C, error) {
	edges, err := readFile[C](path)
	if err != nil {
		return nil, err
	}
	if err := xtabs.ValidateEdges(edges); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return edges, nil
}

// ParseEdges parses comma separated public bin edges.
func ParseEdges[C secret.Number](list string) ([]C, error) {
	var edges []C
	for _, s := range strings.Split(list, ",") {
		v, err := parse[C](strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		edges = append(edges, v)
	}
	if err := xtabs.ValidateEdges(edges); err != nil {
		return nil, err
	}
	return edges, nil
}

// LoadEdges returns the public bin edges named by the argument. An
// argument naming an existing file is read with Edges and any other
// argument is parsed as a comma separated list.
func LoadEdges[C secret.Number](arg string) ([]C, error) {
	fi, err := os.Stat(arg)
	if err == nil && fi.Mode().IsRegular() {
		return Edges[C](arg)
	}
	return ParseEdges[C](arg)
}

func readColumn[C secret.Number](l *Loader, ref ColumnRef) ([]C, error) {
	if !l.Owns(ref.Owner) {
		return make([]C, l.cfg.Rows), nil
	}
	path := l.Path(ref)
	values, err := readFile[C](path)
	if err != nil {
		return nil, err
	}
	if len(values) != l.cfg.Rows {
		return nil, errors.Wrapf(ErrRowCount, "%s: %d rows, expected %d",
			path, len(values), l.cfg.Rows)
	}
	return values, nil
}

func readFile[C secret.Number](path string) ([]C, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	var result []C
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 {
			continue
		}
		v, err := parse[C](text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		result = append(result, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return result, nil
}

func parse[C secret.Number](s string) (C, error) {
	var zero C
	switch any(zero).(type) {
	case float32, float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, errors.Wrapf(err, "invalid number %q", s)
		}
		return C(v), nil
	default:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, errors.Wrapf(err, "invalid integer %q", s)
		}
		return C(v), nil
	}
}
