package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/tetra/internal/input"
)

// Replayer plays recorded frames back into a loop.
// It implements loop.FrameTimer and loop.Platform: each Elapsed call returns
// the next recorded duration and the following PollEvents returns the events
// recorded with it. Once the recording is exhausted Elapsed returns zero and
// PollEvents reports a quit event, so Run ends cleanly.
type Replayer struct {
	data    ReplayData
	frame   int
	current []input.Event
	done    bool
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// Elapsed implements loop.FrameTimer
func (r *Replayer) Elapsed() time.Duration {
	if r.frame >= len(r.data.Frames) {
		r.done = true
		r.current = nil
		return 0
	}

	fr := r.data.Frames[r.frame]
	r.frame++
	r.current = fr.Ev
	return time.Duration(fr.E)
}

// PollEvents implements loop.Platform
func (r *Replayer) PollEvents() ([]input.Event, error) {
	if r.done {
		return []input.Event{input.QuitEvent()}, nil
	}
	ev := r.current
	r.current = nil
	return ev, nil
}

// Present implements loop.Platform
func (r *Replayer) Present() error {
	return nil
}

// Done reports whether every recorded frame has been played
func (r *Replayer) Done() bool {
	return r.done
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Timestep returns the timestep the replay was recorded with
func (r *Replayer) Timestep() time.Duration {
	return time.Duration(r.data.Timestep)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.current = nil
	r.done = false
}

// CreateTestReplayData creates replay data with identical frame durations
func CreateTestReplayData(frames int, elapsed time.Duration) ReplayData {
	data := ReplayData{
		Version:   FormatVersion,
		Seed:      12345,
		Scene:     "test",
		Timestep:  int64(16 * time.Millisecond),
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameRecord, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameRecord{
			F: i,
			E: int64(elapsed),
		}
	}

	return data
}
