package export_test

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-ibt/ibt"
	"github.com/go-ibt/ibt/export"
	"github.com/go-ibt/ibt/format"
	"github.com/go-ibt/ibt/section"
)

// buildFixtureFile writes a complete synthetic .ibt file with a
// "Speed" (Float) and "Gear" (Int) variable and numFrames sample
// frames, and returns its path. It exists only to exercise the
// exporter in tests; the public API never writes .ibt files.
func buildFixtureFile(t *testing.T, dir, name string, numFrames int, speedBase float32) string {
	t.Helper()

	const (
		varHeaderOffset   = int32(section.MinAbsoluteOffset)
		numVars           = 2
		varHeaderLen      = int32(numVars) * section.VarHeaderSize
		sessionInfoOffset = varHeaderOffset + varHeaderLen
	)

	yaml := "WeekendInfo:\n  SubSessionID: 1\n  SessionID: " + name + "\n"
	sessionInfoLen := int32(len(yaml))
	bufLen := int32(8) // Speed(f32)+Gear(i32)
	bufOffset := sessionInfoOffset + sessionInfoLen

	buf := make([]byte, bufOffset+bufLen*int32(numFrames))

	writeI32 := func(off int32, v int32) { binary.LittleEndian.PutUint32(buf[off:], uint32(v)) } //nolint:gosec
	writeF32 := func(off int32, v float32) { binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v)) }

	writeI32(0, 2)
	writeI32(16, sessionInfoLen)
	writeI32(20, sessionInfoOffset)
	writeI32(24, numVars)
	writeI32(28, varHeaderOffset)
	writeI32(32, int32(numFrames))
	writeI32(36, bufLen)
	writeI32(52, bufOffset)

	writeVar := func(i int32, varName string, typ format.VarType, offset int32) {
		off := varHeaderOffset + i*section.VarHeaderSize
		writeI32(off+0, int32(typ))
		writeI32(off+4, offset)
		writeI32(off+8, 1)
		copy(buf[off+16:off+16+section.VarNameLen], varName)
	}

	writeVar(0, "Speed", format.Float, 0)
	writeVar(1, "Gear", format.Int, 4)

	copy(buf[sessionInfoOffset:], yaml)

	for f := 0; f < numFrames; f++ {
		base := bufOffset + int32(f)*bufLen
		writeF32(base+0, speedBase+float32(f))
		writeI32(base+4, int32(f%6))
	}

	path := filepath.Join(dir, name+".ibt")
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	return path
}

func TestFile_ExportsProjectedColumns(t *testing.T) {
	dir := t.TempDir()
	path := buildFixtureFile(t, dir, "a", 5, 0)

	tel, err := ibt.Open(path)
	require.NoError(t, err)
	defer tel.Close()

	out := filepath.Join(dir, "out.parquet")

	rows, err := export.File(context.Background(), tel, out, export.Projection{"Speed", "Gear"}, export.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, int64(5), rows)

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestFile_ProjectionEmpty(t *testing.T) {
	dir := t.TempDir()
	path := buildFixtureFile(t, dir, "b", 2, 0)

	tel, err := ibt.Open(path)
	require.NoError(t, err)
	defer tel.Close()

	_, err = export.File(context.Background(), tel, filepath.Join(dir, "out.parquet"),
		export.Projection{"DoesNotExist"}, export.DefaultOptions())
	require.Error(t, err)
}

func TestFile_NullColumnForMissingVariable(t *testing.T) {
	dir := t.TempDir()
	path := buildFixtureFile(t, dir, "c", 2, 0)

	tel, err := ibt.Open(path)
	require.NoError(t, err)
	defer tel.Close()

	opts := export.DefaultOptions()
	opts.OnMissingVariable = export.OnMissingNullColumn

	out := filepath.Join(dir, "out.parquet")
	rows, err := export.File(context.Background(), tel, out, export.Projection{"Speed", "DoesNotExist"}, opts)
	require.NoError(t, err)
	require.Equal(t, int64(2), rows)
}

func TestMulti_ConcatenatesSessions(t *testing.T) {
	dir := t.TempDir()
	p1 := buildFixtureFile(t, dir, "s1", 3, 0)
	p2 := buildFixtureFile(t, dir, "s2", 2, 100)

	out := filepath.Join(dir, "multi.parquet")

	var seen []string

	rows, err := export.Multi(context.Background(), []string{p1, p2}, out,
		export.Projection{"Speed", "Gear"}, export.DefaultOptions(),
		func(current, total int, name string) {
			seen = append(seen, name)
			require.Equal(t, 2, total)
			require.LessOrEqual(t, current, total)
		})
	require.NoError(t, err)
	require.Equal(t, int64(5), rows)
	require.Len(t, seen, 2)
}

func TestFile_TruncatedSourceFailsInsteadOfShortening(t *testing.T) {
	dir := t.TempDir()
	path := buildFixtureFile(t, dir, "d", 5, 0)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-4], 0o600))

	tel, err := ibt.Open(path)
	require.NoError(t, err)
	defer tel.Close()

	out := filepath.Join(dir, "out.parquet")

	_, err = export.File(context.Background(), tel, out, export.Projection{"Speed", "Gear"}, export.DefaultOptions())
	require.Error(t, err)

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestMulti_NoFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := export.Multi(context.Background(), nil, filepath.Join(dir, "out.parquet"),
		export.Projection{"Speed"}, export.DefaultOptions(), nil)
	require.Error(t, err)
}
