package util

const (
	DateFormat = "2006-01-02"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Export content types
const (
	MimeCSV  = "text/csv"
	MimeJSON = "application/json"
)

var (
	AllowedAttachmentExtensions = []string{".pdf", ".doc", ".docx", ".png", ".jpg", ".jpeg", ".txt"}
)
