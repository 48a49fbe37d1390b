// Package sampling selects the next token from a logit vector using
// temperature-scaled top-k/top-p sampling, or greedy arg-max when the
// temperature is zero.
package sampling

import (
	"math"
	"math/rand"
)

// Config configures a Sampler. Temperature <= 0 selects greedy decoding.
type Config struct {
	Seed        int64
	Temperature float32
	TopK        int
	TopP        float32
}

type Sampler struct {
	rng    *rand.Rand
	cfg    Config
	greedy bool
}

// New returns a sampler with the provided configuration. Out-of-range knobs
// fall back to neutral values rather than failing.
func New(cfg Config) *Sampler {
	greedy := cfg.Temperature <= 0
	if cfg.Temperature <= 0 {
		cfg.Temperature = 1
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 40
	}
	if cfg.TopP <= 0 || cfg.TopP > 1 {
		cfg.TopP = 1
	}
	return &Sampler{
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		cfg:    cfg,
		greedy: greedy,
	}
}

// Sample draws a single index from logits:
//
//  1. Greedy mode returns the arg-max directly.
//  2. Otherwise logits are scaled by the inverse temperature and the top k
//     values shortlisted.
//  3. A softmax over the shortlist is computed with a max subtraction for
//     numerical stability.
//  4. If TopP < 1 the shortlist is truncated where the cumulative probability
//     reaches TopP, then renormalized over the kept entries.
//  5. A uniform draw selects an index from the truncated distribution.
func (s *Sampler) Sample(logits []float32) int {
	if len(logits) == 0 {
		return 0
	}
	if s.greedy || (s.cfg.TopK == 1 && s.cfg.TopP >= 1 && s.cfg.Temperature == 1) {
		return Argmax(logits)
	}

	invTemp := float32(1.0) / s.cfg.Temperature
	k := s.cfg.TopK
	if k > len(logits) {
		k = len(logits)
	}
	topIdx, topVal := topK(logits, k, invTemp)

	maxv := topVal[0]
	prob := make([]float64, len(topVal))
	var sum float64
	for i, v := range topVal {
		e := math.Exp(float64(v - maxv))
		prob[i] = e
		sum += e
	}
	if sum == 0 {
		return topIdx[0]
	}
	for i := range prob {
		prob[i] /= sum
	}

	cut := len(prob)
	if s.cfg.TopP < 1 {
		var c float64
		for i := range prob {
			c += prob[i]
			if float32(c) >= s.cfg.TopP {
				cut = i + 1
				break
			}
		}
	}
	// Renormalize over the kept shortlist so the truncated tail mass does not
	// all land on the last kept token.
	if cut < len(prob) {
		var kept float64
		for i := 0; i < cut; i++ {
			kept += prob[i]
		}
		for i := 0; i < cut; i++ {
			prob[i] /= kept
		}
	}

	r := s.rng.Float64()
	var c float64
	for i := 0; i < cut; i++ {
		c += prob[i]
		if r <= c {
			return topIdx[i]
		}
	}
	return topIdx[cut-1]
}

// Argmax returns the index of the maximum value in x, or 0 for an empty slice.
func Argmax(x []float32) int {
	if len(x) == 0 {
		return 0
	}
	bestI := 0
	bestV := x[0]
	for i := 1; i < len(x); i++ {
		if x[i] > bestV {
			bestV = x[i]
			bestI = i
		}
	}
	return bestI
}

// topK returns the indices and values of the k largest elements of logits,
// scaled by invTemp, ordered from largest to smallest. O(V*K) insertion is
// fine for the small K used here.
func topK(logits []float32, k int, invTemp float32) ([]int, []float32) {
	topIdx := make([]int, 0, k+1)
	topVal := make([]float32, 0, k+1)

	for i, l := range logits {
		v := l * invTemp

		pos := len(topVal)
		for pos > 0 && topVal[pos-1] < v {
			pos--
		}
		if pos >= k {
			continue
		}

		topIdx = append(topIdx, 0)
		topVal = append(topVal, 0)
		copy(topIdx[pos+1:], topIdx[pos:])
		copy(topVal[pos+1:], topVal[pos:])
		topIdx[pos] = i
		topVal[pos] = v

		if len(topVal) > k {
			topIdx = topIdx[:k]
			topVal = topVal[:k]
		}
	}
	return topIdx, topVal
}
