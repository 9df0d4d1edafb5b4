// Package export converts decoded telemetry samples into columnar
// Parquet files for downstream ML pipelines, using
// github.com/apache/arrow-go/v18's array builders and pqarrow writer.
//
// File exports one .ibt file's samples to one Parquet file. Multi
// concatenates several files into one Parquet file, fixing the schema
// from the first file and restarting sample_idx at 0 per file.
package export
