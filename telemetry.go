package ibt

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-ibt/ibt/endian"
	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/internal/collision"
	"github.com/go-ibt/ibt/internal/options"
	"github.com/go-ibt/ibt/section"
	"github.com/go-ibt/ibt/session"
)

// source is the random-access byte provider a Telemetry handle reads
// from. *os.File satisfies it; tests substitute an in-memory implementation.
type source interface {
	io.ReaderAt
	io.Closer
}

// Telemetry is the handle returned by Open. It owns the underlying file,
// the decoded FileHeader/DiskSubHeader, the immutable variable
// dictionary, and the parsed session info tree.
//
// A Telemetry handle is not safe for concurrent use by multiple
// goroutines; a sample iterator borrows it exclusively for its
// lifetime. Multiple handles on different files are fully independent.
type Telemetry struct {
	src         source
	header      section.FileHeader
	diskHeader  section.DiskSubHeader
	dict        section.VarDict
	sessionInfo session.Node
	sessionID   string
	engine      endian.EndianEngine
	logger      *slog.Logger
	closed      bool
	iterErr     error
}

// Open decodes the headers, variable dictionary, and session info of
// the .ibt file at path, and returns a Telemetry handle for it. The
// sample region is not read until Samples or SampleAt is called.
func Open(path string, opts ...Option) (*Telemetry, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, errs.Wrap(errs.ErrIO, err)
	}

	tel, err := openFrom(f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return tel, nil
}

func openFrom(src source, cfg *config) (*Telemetry, error) {
	engine := endian.GetLittleEndianEngine()

	headerBuf, err := readFull(src, 0, section.FileHeaderSize+section.DiskSubHeaderSize)
	if err != nil {
		return nil, err
	}

	fh, err := section.ParseFileHeader(engine, headerBuf)
	if err != nil {
		return nil, err
	}

	dh, err := section.ParseDiskSubHeader(engine, headerBuf)
	if err != nil {
		return nil, err
	}

	var dict section.VarDict
	if fh.NumVars > 0 {
		varBuf, err := readFull(src, int64(fh.VarHeaderOffset), int(fh.NumVars)*section.VarHeaderSize)
		if err != nil {
			return nil, err
		}

		// varBuf already starts at the var-header array, so ParseVarDict
		// must index it from 0 rather than from the absolute offset.
		dictHeader := fh
		dictHeader.VarHeaderOffset = 0

		dict, err = section.ParseVarDict(engine, varBuf, dictHeader)
		if err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	var sessionNode session.Node
	if fh.SessionInfoLen > 0 {
		raw, err := readFull(src, int64(fh.SessionInfoOffset), int(fh.SessionInfoLen))
		if err != nil {
			return nil, err
		}

		sessionNode, err = session.Parse(raw, cfg.onSessionInfoError)
		if err != nil {
			return nil, errs.Wrap(errs.ErrSessionInfoMalformed, err)
		}
	}

	return &Telemetry{
		src:         src,
		header:      fh,
		diskHeader:  dh,
		dict:        dict,
		sessionInfo: sessionNode,
		sessionID:   sessionNode.ID(),
		engine:      engine,
		logger:      logger,
	}, nil
}

// readFull allocates an n-byte buffer and reads it from src at off,
// mapping a short read to errs.ErrTruncated.
func readFull(src io.ReaderAt, off int64, n int) ([]byte, error) {
	buf := make([]byte, n)

	read, err := src.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	if read < n {
		return nil, errs.WithOffset(errs.ErrTruncated, off)
	}

	return buf, nil
}

// Header returns a copy of the decoded FileHeader.
func (t *Telemetry) Header() section.FileHeader { return t.header }

// DiskHeader returns a copy of the decoded DiskSubHeader.
func (t *Telemetry) DiskHeader() section.DiskSubHeader { return t.diskHeader }

// Variables returns the ordered VarHeader dictionary. The returned slice
// must not be mutated.
func (t *Telemetry) Variables() []section.VarHeader { return t.dict.All() }

// Warnings returns the duplicate-name warnings collected while building
// the variable dictionary. A name declared more than once keeps its
// first VarHeader for lookup purposes; every later declaration is
// reported here rather than through logging.
func (t *Telemetry) Warnings() []collision.Warning {
	return t.dict.Warnings()
}

// VariableByName returns the VarHeader for name, resolved
// case-insensitively against the dictionary, and false if no variable
// by that name exists.
func (t *Telemetry) VariableByName(name string) (section.VarHeader, bool) {
	return t.dict.Get(name)
}

// SessionInfo returns the parsed session-info tree.
func (t *Telemetry) SessionInfo() session.Node { return t.sessionInfo }

// SessionID returns the derived "{SubSessionID}-{SessionID}" identifier.
func (t *Telemetry) SessionID() string { return t.sessionID }

// Close releases the underlying file. It is safe to call multiple times.
func (t *Telemetry) Close() error {
	if t.closed {
		return nil
	}

	t.closed = true

	return t.src.Close()
}
