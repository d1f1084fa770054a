package svmerge

import (
	"runtime"

	"github.com/google/uuid"
	"github.com/grailbio/base/log"
)

// progressInterval is the number of calls between progress log lines.
const progressInterval = 100000

// Batch carries the state of one merge: its options, an id that prefixes
// every log line, and the statistics gathered so far.  A Batch is used by one
// goroutine at a time.
type Batch struct {
	ID    string
	Opts  Opts
	Stats Stats
}

// NewBatch validates opts and creates a batch with a fresh id.
func NewBatch(opts Opts) (*Batch, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Batch{ID: uuid.New().String(), Opts: opts}, nil
}

// Printf logs a line prefixed by the batch id.
func (b *Batch) Printf(format string, args ...interface{}) {
	log.Printf("%s: "+format, append([]interface{}{b.ID}, args...)...)
}

func (b *Batch) debugf(format string, args ...interface{}) {
	log.Debug.Printf("%s: "+format, append([]interface{}{b.ID}, args...)...)
}

func (b *Batch) parallelism() int {
	if b.Opts.Parallelism > 0 {
		return b.Opts.Parallelism
	}
	return runtime.NumCPU()
}
