package quantize

import "github.com/cwbudde/algo-cvquant/dsp/core"

// Block holds per-channel sample buffers for block processing. Every
// channel of In must have the same length.
type Block struct {
	In      [][]float64
	CV      [][]float64
	Trigger [][]float64

	frameIn, frameCV, frameTrig [MaxChannels]float64
}

// ProcessBlock runs one tick per sample of b.In. b.CV and b.Trigger are
// resized to mirror the input channel count (at most MaxChannels) and
// reused across calls.
func (q *Quantizer) ProcessBlock(b *Block, sampleRate float64) {
	q.processBlock(b, sampleRate, false)
}

// BypassBlock is the block form of [Quantizer.ProcessBypass].
func (q *Quantizer) BypassBlock(b *Block) {
	q.processBlock(b, 0, true)
}

func (q *Quantizer) processBlock(b *Block, sampleRate float64, bypass bool) {
	channels := min(len(b.In), MaxChannels)
	frames := 0
	if channels > 0 {
		frames = len(b.In[0])
	}

	b.CV = core.EnsureChannels(b.CV, channels, frames)
	b.Trigger = core.EnsureChannels(b.Trigger, channels, frames)

	sampleTime := 0.0
	if sampleRate > 0 {
		sampleTime = 1 / sampleRate
	}

	in := b.frameIn[:channels]
	cv := b.frameCV[:channels]
	trig := b.frameTrig[:channels]
	for i := range frames {
		for c := range channels {
			in[c] = b.In[c][i]
		}
		if bypass {
			q.ProcessBypass(in, cv, trig)
		} else {
			q.Process(in, cv, trig, sampleTime)
		}
		for c := range channels {
			b.CV[c][i] = cv[c]
			b.Trigger[c][i] = trig[c]
		}
	}
}
