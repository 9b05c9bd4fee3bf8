// Package cvio reads and writes multichannel control-voltage signals as
// PCM WAV files. Full-scale digital values map to ±10 V, the usual
// Eurorack range.
package cvio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-cvquant/dsp/core"
)

const (
	// FullScale is the voltage of a full-scale sample.
	FullScale = 10.0
	// BitDepth is the PCM depth used by Write.
	BitDepth = 24

	wavFormatPCM = 1
)

var (
	// ErrNoChannels is returned when a signal has no channels.
	ErrNoChannels = errors.New("cvio: signal has no channels")
	// ErrRaggedChannels is returned when channels differ in length.
	ErrRaggedChannels = errors.New("cvio: channels differ in length")
	// ErrInvalidFile is returned for files that are not PCM WAV.
	ErrInvalidFile = errors.New("cvio: not a PCM WAV file")
)

// Signal is a deinterleaved multichannel signal in volts.
type Signal struct {
	SampleRate int
	Channels   [][]float64
}

// NewSignal allocates a silent signal.
func NewSignal(sampleRate, channels, frames int) *Signal {
	s := &Signal{SampleRate: sampleRate}
	s.Channels = core.EnsureChannels(nil, channels, frames)
	return s
}

// Frames returns the number of samples per channel.
func (s *Signal) Frames() int {
	if s == nil || len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// Validate checks that s has channels of equal length and a positive rate.
func (s *Signal) Validate() error {
	if s == nil || len(s.Channels) == 0 {
		return ErrNoChannels
	}
	if len(s.Channels) > core.MaxChannels {
		return fmt.Errorf("cvio: %d channels exceeds maximum %d", len(s.Channels), core.MaxChannels)
	}
	if s.SampleRate <= 0 {
		return fmt.Errorf("cvio: sample rate must be > 0: %d", s.SampleRate)
	}
	n := len(s.Channels[0])
	for i, ch := range s.Channels {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrRaggedChannels, i, len(ch), n)
		}
	}
	return nil
}

// Read decodes a PCM WAV file into volts.
func Read(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cvio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: %s has format %d", ErrInvalidFile, path, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("cvio: decode %s: %w", path, err)
	}

	numChans := int(dec.NumChans)
	if numChans <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoChannels, path)
	}
	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 {
		bitDepth = buf.SourceBitDepth
	}
	scale := FullScale / math.Ldexp(1, bitDepth-1)

	// 8-bit PCM is unsigned with silence at 128.
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	frames := len(buf.Data) / numChans
	sig := NewSignal(int(dec.SampleRate), numChans, frames)
	for i := range frames {
		for c := range numChans {
			sig.Channels[c][i] = float64(buf.Data[i*numChans+c]-offset) * scale
		}
	}
	return sig, nil
}

// Write encodes s as a 24-bit PCM WAV file. Voltages beyond ±FullScale
// are clipped; NaN and Inf are written as 0 V.
func Write(path string, s *Signal) (err error) {
	if err := s.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cvio: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cvio: close %s: %w", path, cerr)
		}
	}()

	numChans := len(s.Channels)
	frames := s.Frames()
	peak := math.Ldexp(1, BitDepth-1) - 1

	data := make([]int, frames*numChans)
	for i := range frames {
		for c, ch := range s.Channels {
			v := core.Clamp(core.Sanitize(ch[i])/FullScale, -1, 1)
			data[i*numChans+c] = int(math.Round(v * peak))
		}
	}

	enc := wav.NewEncoder(f, s.SampleRate, BitDepth, numChans, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: s.SampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("cvio: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("cvio: finalize %s: %w", path, err)
	}
	return nil
}

// Normalize returns a copy of samples scaled so the peak magnitude is 1.
// Silent input is returned unchanged.
func Normalize(samples []float64) []float64 {
	buf := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1},
		Data:   append([]float64(nil), samples...),
	}
	transforms.NormalizeMax(buf)
	return buf.Data
}
