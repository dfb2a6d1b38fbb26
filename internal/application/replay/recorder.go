package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/tetra/internal/application/loop"
	"github.com/younwookim/tetra/internal/input"
)

// Recorder sits between the loop and its real timer and platform, recording
// every measured frame duration and every polled event.
// It implements loop.FrameTimer and loop.Platform.
type Recorder struct {
	data      ReplayData
	timer     loop.FrameTimer
	platform  loop.Platform
	recording bool
}

// NewRecorder creates a recorder wrapping timer and platform
func NewRecorder(seed int64, scene string, timestep time.Duration, timer loop.FrameTimer, platform loop.Platform) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   FormatVersion,
			Seed:      seed,
			Scene:     scene,
			Timestep:  int64(timestep),
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameRecord, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		timer:     timer,
		platform:  platform,
		recording: true,
	}
}

// Elapsed implements loop.FrameTimer and opens a new frame record
func (r *Recorder) Elapsed() time.Duration {
	d := r.timer.Elapsed()
	if r.recording {
		r.data.Frames = append(r.data.Frames, FrameRecord{
			F: len(r.data.Frames),
			E: int64(d),
		})
	}
	return d
}

// PollEvents implements loop.Platform and attaches the events to the
// current frame record
func (r *Recorder) PollEvents() ([]input.Event, error) {
	events, err := r.platform.PollEvents()
	if err != nil {
		return nil, err
	}
	if r.recording && len(events) > 0 && len(r.data.Frames) > 0 {
		last := &r.data.Frames[len(r.data.Frames)-1]
		last.Ev = append(last.Ev, events...)
	}
	return events, nil
}

// Present implements loop.Platform
func (r *Recorder) Present() error {
	return r.platform.Present()
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Data returns the recorded data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// Stop stops recording. Timer and platform calls still pass through.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
