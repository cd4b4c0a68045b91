package gesture

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrMalformed is returned for gesture lines that are neither a reading nor a
// landmark set.
var ErrMalformed = errors.New("gesture: malformed line")

// message is one JSON line on the wire. Either Hands or Openness must be set.
type message struct {
	Openness *float64      `json:"openness"`
	Detected *bool         `json:"detected"`
	Hands    [][][]float64 `json:"hands"`
}

// ParseLine decodes a single JSON line into a signal.
//
//	{"openness":0.7,"detected":true}
//	{"hands":[[[x,y,z], ... 21 points]]}
//
// A line with openness but no detected flag counts as detected.
func ParseLine(line []byte, cal Calibration) (Signal, error) {
	var msg message
	if err := json.Unmarshal(line, &msg); err != nil {
		return Idle, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if msg.Hands != nil {
		hands, err := decodeHands(msg.Hands)
		if err != nil {
			return Idle, err
		}
		return Estimate(hands, cal), nil
	}

	if msg.Openness != nil {
		detected := true
		if msg.Detected != nil {
			detected = *msg.Detected
		}
		return NewSignal(*msg.Openness, detected), nil
	}

	return Idle, fmt.Errorf("%w: neither openness nor hands present", ErrMalformed)
}

// decodeHands converts wire landmark arrays into hands.
func decodeHands(raw [][][]float64) ([]Hand, error) {
	hands := make([]Hand, len(raw))
	for i, pts := range raw {
		if len(pts) != LandmarkCount {
			return nil, fmt.Errorf("%w: hand %d has %d landmarks, want %d", ErrMalformed, i, len(pts), LandmarkCount)
		}
		for j, p := range pts {
			if len(p) < 2 {
				return nil, fmt.Errorf("%w: hand %d landmark %d has %d coordinates", ErrMalformed, i, j, len(p))
			}
			hands[i][j] = Landmark{X: p[0], Y: p[1]}
			if len(p) > 2 {
				hands[i][j].Z = p[2]
			}
		}
	}
	return hands, nil
}

// StreamReader feeds JSON-line gesture readings from an io.Reader into a Mailbox.
type StreamReader struct {
	r   io.Reader
	box *Mailbox
	cal Calibration

	lines   int
	skipped int
}

// NewStreamReader creates a reader that posts every valid line to box.
func NewStreamReader(r io.Reader, box *Mailbox, cal Calibration) *StreamReader {
	return &StreamReader{r: r, box: box, cal: cal}
}

// Run consumes lines until EOF, a read error, or ctx is cancelled.
// Malformed lines are logged and skipped. EOF returns nil.
func (s *StreamReader) Run(ctx context.Context) error {
	lines := make(chan []byte)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.r)
		for sc.Scan() {
			b := bytes.Clone(sc.Bytes())
			select {
			case lines <- b:
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					if err != nil {
						return fmt.Errorf("reading gesture stream: %w", err)
					}
				default:
				}
				return ctx.Err()
			}
			s.handle(line)
		}
	}
}

func (s *StreamReader) handle(line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return
	}
	s.lines++
	sig, err := ParseLine(line, s.cal)
	if err != nil {
		s.skipped++
		slog.Warn("skipping gesture line", "line", s.lines, "error", err)
		return
	}
	s.box.Post(sig)
}

// Counts returns how many non-empty lines were read and how many were skipped.
// Only meaningful after Run returns.
func (s *StreamReader) Counts() (lines, skipped int) {
	return s.lines, s.skipped
}
