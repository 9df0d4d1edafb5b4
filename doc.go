// Package ibt decodes iRacing binary telemetry (.ibt) files: fixed
// 112-byte file headers, a 32-byte disk sub-header, a YAML session-info
// blob, a variable dictionary, and a packed sequence of fixed-width
// sample frames.
//
// # Basic Usage
//
// Opening a file and reading its header and session metadata:
//
//	import "github.com/go-ibt/ibt"
//
//	tel, err := ibt.Open("practice.ibt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Close()
//
//	fmt.Println(tel.SessionID(), tel.Header().TickRate)
//
// Streaming samples:
//
//	for idx, sample := range tel.Samples(ctx) {
//	    v, ok := sample.Get("Speed")
//	    if ok {
//	        fmt.Println(idx, v.Float32())
//	    }
//	}
//
// # Package Structure
//
// This package provides the Telemetry handle and sample iteration. The
// lower-level binary structures live in section, the session metadata
// tree lives in session, and the Parquet exporter lives in export.
package ibt
