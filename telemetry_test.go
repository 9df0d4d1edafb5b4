package ibt

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/format"
	"github.com/go-ibt/ibt/internal/options"
	"github.com/go-ibt/ibt/section"
)

// memSource adapts an in-memory byte slice to the source interface, so
// tests never touch the filesystem.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

func newMemSource(b []byte) memSource {
	return memSource{bytes.NewReader(b)}
}

// fixtureVar describes one synthetic VarHeader for buildFixture.
type fixtureVar struct {
	name  string
	typ   format.VarType
	count int32
}

// buildFixture assembles a complete synthetic .ibt byte image: a valid
// FileHeader and DiskSubHeader, a VarHeader array, a YAML session-info
// blob, and numFrames sample frames filled by fill. It exists only to
// exercise the decoder in tests; the public API never writes .ibt files.
func buildFixture(t *testing.T, vars []fixtureVar, sessionYAML string, numFrames int, fill func(frame int, name string) any) []byte {
	t.Helper()

	bufLen := int32(0)
	offsets := make(map[string]int32, len(vars))
	for _, v := range vars {
		width, ok := format.Width(v.typ)
		require.True(t, ok)

		offsets[v.name] = bufLen
		bufLen += int32(width) * v.count
	}

	varHeaderOffset := int32(section.MinAbsoluteOffset)
	varHeaderLen := int32(len(vars)) * section.VarHeaderSize
	sessionInfoOffset := varHeaderOffset + varHeaderLen
	sessionBytes := []byte(sessionYAML)
	sessionInfoLen := int32(len(sessionBytes))
	bufOffset := sessionInfoOffset + sessionInfoLen

	buf := make([]byte, bufOffset+bufLen*int32(numFrames))

	writeI32 := func(off int32, v int32) { binary.LittleEndian.PutUint32(buf[off:], uint32(v)) } //nolint:gosec
	writeF32 := func(off int32, v float32) { binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v)) }
	writeF64 := func(off int32, v float64) { binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v)) }

	writeI32(0, 2)                  // Version
	writeI32(4, 0)                  // Status
	writeI32(8, 60)                 // TickRate
	writeI32(12, 1)                 // SessionInfoUpdate
	writeI32(16, sessionInfoLen)    // SessionInfoLen
	writeI32(20, sessionInfoOffset) // SessionInfoOffset
	writeI32(24, int32(len(vars)))  // NumVars
	writeI32(28, varHeaderOffset)   // VarHeaderOffset
	writeI32(32, int32(numFrames))  // NumBuf
	writeI32(36, bufLen)            // BufLen
	writeI32(52, bufOffset)         // BufOffset (field index 13 -> byte 52)

	writeF32(112, 1.5)  // DiskSubHeader.StartDate
	writeF64(116, 0)    // StartTime
	writeF64(124, 3600) // EndTime
	writeI32(132, 5)    // LapCount
	writeI32(136, int32(numFrames))

	for i, v := range vars {
		off := varHeaderOffset + int32(i)*section.VarHeaderSize
		writeI32(off+0, int32(v.typ))
		writeI32(off+4, offsets[v.name])
		writeI32(off+8, v.count)
		buf[off+12] = 0 // CountAsTime

		copy(buf[off+16:off+16+section.VarNameLen], v.name)
		copy(buf[off+16+section.VarNameLen:off+16+section.VarNameLen+section.VarDescLen], v.name+" desc")
		copy(buf[off+16+section.VarNameLen+section.VarDescLen:off+16+section.VarNameLen+section.VarDescLen+section.VarUnitLen], "unit")
	}

	copy(buf[sessionInfoOffset:], sessionBytes)

	for f := 0; f < numFrames; f++ {
		base := bufOffset + int32(f)*bufLen
		for _, v := range vars {
			val := fill(f, v.name)
			off := base + offsets[v.name]

			switch v.typ {
			case format.Float:
				writeF32(off, val.(float32))
			case format.Int:
				writeI32(off, val.(int32))
			case format.Bool:
				if val.(bool) {
					buf[off] = 1
				}
			}
		}
	}

	return buf
}

func basicFixture(t *testing.T, numFrames int) []byte {
	t.Helper()

	vars := []fixtureVar{
		{name: "Speed", typ: format.Float, count: 1},
		{name: "Gear", typ: format.Int, count: 1},
	}

	yaml := "WeekendInfo:\n  SubSessionID: 111\n  SessionID: 222\n"

	return buildFixture(t, vars, yaml, numFrames, func(frame int, name string) any {
		switch name {
		case "Speed":
			return float32(frame) * 10.0
		case "Gear":
			return int32(frame % 6)
		}

		return nil
	})
}

func TestOpenFrom_HeaderAndSession(t *testing.T) {
	data := basicFixture(t, 3)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	require.Equal(t, int32(2), tel.Header().Version)
	require.Equal(t, int32(60), tel.Header().TickRate)
	require.Equal(t, "111-222", tel.SessionID())
	require.Len(t, tel.Variables(), 2)
	require.Equal(t, 3, tel.Len())
}

func TestOpenFrom_UnsupportedVersion(t *testing.T) {
	data := basicFixture(t, 1)
	binary.LittleEndian.PutUint32(data[0:], 1)

	_, err := openFrom(newMemSource(data), newConfig())
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestOpenFrom_MalformedSessionInfo(t *testing.T) {
	vars := []fixtureVar{{name: "Speed", typ: format.Float, count: 1}}
	data := buildFixture(t, vars, "foo: [unterminated\n", 1, func(int, string) any { return float32(1) })

	_, err := openFrom(newMemSource(data), newConfig())
	require.ErrorIs(t, err, errs.ErrSessionInfoMalformed)
}

func TestOpenFrom_MalformedSessionInfo_EmptyPolicy(t *testing.T) {
	vars := []fixtureVar{{name: "Speed", typ: format.Float, count: 1}}
	data := buildFixture(t, vars, "foo: [unterminated\n", 1, func(int, string) any { return float32(1) })

	cfg := newConfig()
	tel, err := openFrom(newMemSource(data), cfgWithSessionPolicyEmpty(cfg))
	require.NoError(t, err)
	require.True(t, tel.SessionInfo().IsZero())
}

func TestSamples_StreamsInOrder(t *testing.T) {
	data := basicFixture(t, 4)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	var gears []int32
	for i, s := range tel.Samples(context.Background()) {
		v, ok := s.Get("speed") // case-insensitive
		require.True(t, ok)
		require.Equal(t, float32(i)*10.0, v.Float32())

		g, ok := s.Get("Gear")
		require.True(t, ok)
		gears = append(gears, g.Int32())
	}

	require.Equal(t, []int32{0, 1, 2, 3}, gears)
}

func TestSamples_StopsOnCancelledContext(t *testing.T) {
	data := basicFixture(t, 10)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	ctx, cancel := context.WithCancel(context.Background())
	count := 0

	for i := range tel.Samples(ctx) {
		count++
		if i == 2 {
			cancel()
		}
	}

	require.LessOrEqual(t, count, 4)
	require.ErrorIs(t, tel.Err(), errs.ErrCancelled)
}

func TestSamples_TruncatedMidFrame(t *testing.T) {
	data := basicFixture(t, 5)
	truncated := data[:len(data)-4] // cut off partway through the last frame

	tel, err := openFrom(newMemSource(truncated), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	count := 0
	for range tel.Samples(context.Background()) {
		count++
	}

	require.Equal(t, 4, count)
	require.ErrorIs(t, tel.Err(), errs.ErrShortRead)
}

func TestSamples_ClosedHandle(t *testing.T) {
	data := basicFixture(t, 3)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	require.NoError(t, tel.Close())

	count := 0
	for range tel.Samples(context.Background()) {
		count++
	}

	require.Equal(t, 0, count)
	require.ErrorIs(t, tel.Err(), errs.ErrClosed)
}

func TestSampleAt_ClosedHandle(t *testing.T) {
	data := basicFixture(t, 3)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	require.NoError(t, tel.Close())

	_, err = tel.SampleAt(context.Background(), 0)
	require.ErrorIs(t, err, errs.ErrClosed)
}

func TestSamples_CompletePassHasNoErr(t *testing.T) {
	data := basicFixture(t, 3)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	for range tel.Samples(context.Background()) {
	}

	require.NoError(t, tel.Err())
}

func TestSampleAt_RandomAccess(t *testing.T) {
	data := basicFixture(t, 5)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	s, err := tel.SampleAt(context.Background(), 3)
	require.NoError(t, err)

	v, ok := s.Get("Speed")
	require.True(t, ok)
	require.Equal(t, float32(30), v.Float32())
}

func TestSampleAt_OutOfRange(t *testing.T) {
	data := basicFixture(t, 2)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	_, err = tel.SampleAt(context.Background(), 99)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSample_ToMap(t *testing.T) {
	data := basicFixture(t, 1)

	tel, err := openFrom(newMemSource(data), newConfig())
	require.NoError(t, err)
	defer tel.Close()

	for _, s := range tel.Samples(context.Background()) {
		m := s.ToMap()
		require.Contains(t, m, "Speed")
		require.Contains(t, m, "Gear")
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/path/does-not-exist.ibt")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

// cfgWithSessionPolicyEmpty is a small test helper so fixtures above can
// flip the session-info error policy without importing the session
// package's unexported details.
func cfgWithSessionPolicyEmpty(cfg *config) *config {
	_ = options.Apply(cfg, OnSessionInfoErrorEmpty())
	return cfg
}
