package queue

type settings struct {
	capacity int
}

// Option configures a Buffered queue at construction time.
type Option func(*settings)

// WithCapacity bounds the number of batches the queue will hold.
// Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.capacity = n
		}
	}
}
