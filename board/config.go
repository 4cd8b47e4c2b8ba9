package board

// Config sizes the watch hub.
type Config struct {
	BufferSize int // per-worker and per-watcher queue length, default: 1
	NumWorkers int // delivery workers; one partition always maps to one worker
}

// NewConfig clamps non-positive sizes to 1.
func NewConfig(bufferSize, numWorkers int) Config {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return Config{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

func (c Config) normalized() Config {
	return NewConfig(c.BufferSize, c.NumWorkers)
}
