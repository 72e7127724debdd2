package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeCSV       = "text/csv"
	MimeTextPlain = "text/plain"
)

var (
	AllowedSheetExtensions = []string{".csv", ".txt"}
	AllowedSheetMimeTypes  = []string{MimeTextPlain, MimeCSV, "application/octet-stream"}
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)
