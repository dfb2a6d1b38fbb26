package replay

import "github.com/younwookim/tetra/internal/input"

// FormatVersion is the replay file format version
const FormatVersion = "1.0"

// FrameRecord records one real frame: the wall time it measured and the
// events polled during it
type FrameRecord struct {
	F  int           `json:"f"`            // Frame number
	E  int64         `json:"e"`            // Elapsed nanoseconds
	Ev []input.Event `json:"ev,omitempty"` // Polled events
}

// ReplayData contains all data needed to replay a loop run
type ReplayData struct {
	Version   string        `json:"version"`
	Seed      int64         `json:"seed"`
	Scene     string        `json:"scene"`
	Timestep  int64         `json:"timestep"` // nanoseconds
	StartTime string        `json:"startTime"`
	Frames    []FrameRecord `json:"frames"`
}
