package model

// Batch is the unit of ingestion: a set of performance records submitted
// together, typically one show or one archive page. The ID is assigned at
// the HTTP boundary and carried through the queue for log correlation.
type Batch struct {
	ID     string
	Tracks []Track
}
