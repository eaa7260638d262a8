package bconf

import "log/slog"

// slogFile is a small helper keeping the Trace-log call sites in parser.go
// and bconf.go free of repeated slog.String("file", ...) boilerplate.
func slogFile(file string) slog.Attr {
	return slog.String("file", file)
}
