package models

// JobResult counts the rows a reconciliation run processed.
type JobResult struct {
	Updated int
	Failed  int
}

func (r JobResult) Add(other JobResult) JobResult {
	return JobResult{
		Updated: r.Updated + other.Updated,
		Failed:  r.Failed + other.Failed,
	}
}
