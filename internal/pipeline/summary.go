package pipeline

import "github.com/mgpai22/rsub/internal/transform"

// outcome of processing one file
type FileResult struct {
	Path string
	// file actually read, the backup when it was used as input
	Source  string
	Read    int
	Written int
	Err     error
}

// Skipped reports a file that was read without error but not rewritten.
func (r FileResult) Skipped() bool {
	return r.Err == nil && r.Written == 0
}

// outcome of a batch run
type Summary struct {
	Commands []transform.Command
	Files    []FileResult
	Read     int
	Written  int
	Failed   int
}

func (s *Summary) add(result FileResult) {
	s.Files = append(s.Files, result)
	s.Read += result.Read
	s.Written += result.Written
	if result.Err != nil {
		s.Failed++
	}
}
