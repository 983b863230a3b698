package embedding

import (
	"context"
	"math"
)

// Encoder turns texts into fixed-dimension vectors. Implementations must
// be stateless with respect to Encode calls so one instance can be shared
// across concurrent requests, and must L2-normalize their output so inner
// product equals cosine similarity.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Normalize scales v to unit L2 norm in place and returns it. Zero
// vectors are returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return v
}
