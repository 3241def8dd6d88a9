package repository

// ReportSource is the remote drop the external reporting system deposits
// XML files into. Listing and fetch failures are fatal for the run; the
// caller must not mutate history after one.
type ReportSource interface {
	ListFiles(remoteDir string) ([]string, error)
	Fetch(remotePath, localPath string) error
}
