package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Files           int
	Jobs            int
	Total           int // Files × Jobs.
	Succeeded       int
	Failed          int
	Overwritten     int // Units whose output replaced an earlier unit's in this run.
	EnrichSucceeded int
	EnrichFailed    int
	OutputBytes     int64
}

// AllSucceeded reports whether every planned unit produced an output.
func (s *RunStats) AllSucceeded() bool {
	return s.Failed == 0 && s.Succeeded == s.Total
}
