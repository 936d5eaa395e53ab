package analysis

// Chunk is one piece of a streamed completion. A chunk with a non-nil Err is
// the last one sent before the channel closes.
type Chunk struct {
	Text string
	Err  error
}
