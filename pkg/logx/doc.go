// Package logx configures cronlint's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//
// Diagnostics go through logx; the lint/simulation report itself is written
// by internal/report and is never routed through the logger.
package logx
