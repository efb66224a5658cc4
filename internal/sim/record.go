package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// RunRecorder streams a simulation run to disk as zstd-compressed JSON lines,
// one frame per tick. Recordings are diagnostic artifacts for offline
// analysis of long headless runs; they are not a save format.
type RunRecorder struct {
	f  *os.File
	zw *zstd.Encoder
	bw *bufio.Writer
}

// RunMeta is the first line of every recording.
type RunMeta struct {
	Type      string   `json:"type"` // always "meta"
	Level     string   `json:"level"`
	Seed      int64    `json:"seed"`
	TickRate  float64  `json:"tick_rate"`
	Config    AiConfig `json:"config"`
	StartedAt string   `json:"started_at"`
}

// RunFrame is one recorded tick.
type RunFrame struct {
	Type    string           `json:"type"` // always "frame"
	Tick    int              `json:"tick"`
	Elapsed float64          `json:"elapsed"`
	Moodels []MoodelSnapshot `json:"moodels"`
	Zones   []ZoneStatus     `json:"zones"`
	Events  []Event          `json:"events,omitempty"`
	Won     bool             `json:"won,omitempty"`
}

// NewRunRecorder creates (or truncates) a recording at path.
func NewRunRecorder(path string) (*RunRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &RunRecorder{
		f:  f,
		zw: zw,
		bw: bufio.NewWriterSize(zw, 128*1024),
	}, nil
}

// WriteMeta writes the run header. Call once, before any frame.
func (r *RunRecorder) WriteMeta(meta RunMeta) error {
	meta.Type = "meta"
	return r.writeLine(meta)
}

// WriteFrame records the world's post-tick state along with the events that
// tick produced.
func (r *RunRecorder) WriteFrame(w *World, events []Event) error {
	return r.writeLine(RunFrame{
		Type:    "frame",
		Tick:    w.CurrentTick(),
		Elapsed: w.Elapsed(),
		Moodels: w.Snapshot(),
		Zones:   w.ZoneStatuses(),
		Events:  events,
		Won:     w.LevelComplete(),
	})
}

func (r *RunRecorder) writeLine(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := r.bw.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return r.bw.WriteByte('\n')
}

// Close flushes and closes the recording. The recorder is unusable after.
func (r *RunRecorder) Close() error {
	if err := r.bw.Flush(); err != nil {
		r.zw.Close()
		r.f.Close()
		return fmt.Errorf("flush recording: %w", err)
	}
	if err := r.zw.Close(); err != nil {
		r.f.Close()
		return fmt.Errorf("close zstd: %w", err)
	}
	return r.f.Close()
}

// ReadRecording decodes a recording back into its meta line and frames.
// Intended for offline tooling and tests.
func ReadRecording(path string) (RunMeta, []RunFrame, error) {
	var meta RunMeta

	f, err := os.Open(path)
	if err != nil {
		return meta, nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return meta, nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	var frames []RunFrame
	sawMeta := false
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if !sawMeta {
			if err := json.Unmarshal(line, &meta); err != nil {
				return meta, nil, fmt.Errorf("decode meta: %w", err)
			}
			sawMeta = true
			continue
		}
		var fr RunFrame
		if err := json.Unmarshal(line, &fr); err != nil {
			return meta, nil, fmt.Errorf("decode frame: %w", err)
		}
		frames = append(frames, fr)
	}
	if err := sc.Err(); err != nil {
		return meta, nil, fmt.Errorf("scan recording: %w", err)
	}
	if !sawMeta {
		return meta, nil, fmt.Errorf("recording %s: empty", path)
	}
	return meta, frames, nil
}
