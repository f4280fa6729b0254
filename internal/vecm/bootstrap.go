// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
)

// bootstrapDraw carries the impulse responses of one successful
// replication, one matrix per shock.
type bootstrapDraw struct {
	irfs []*mat.Dense
	ok   bool
}

// BootstrapIRF builds residual-bootstrap confidence bands around the
// orthogonalized impulse responses of the fitted model. Each replication
// resamples the estimated residuals with replacement, simulates a new
// sample through the level VAR form, re-estimates the error correction
// model on it, and records the implied responses. Replications where the
// re-estimation fails are skipped and counted in Failed; the call errors
// only when every replication fails.
//
// The returned map is keyed by shock index. Replications run on a worker
// pool sized to the machine; per-replication seeds are drawn from a master
// generator up front, so results are reproducible for a fixed Seed
// regardless of scheduling.
func (m *VECM) BootstrapIRF(Y *mat.Dense, opts BootstrapOptions) (map[int]*IRFBand, error) {
	if m == nil || m.Alpha == nil {
		return nil, fmt.Errorf("vecm: model not estimated")
	}
	if Y == nil {
		return nil, fmt.Errorf("vecm: data not provided")
	}
	if opts.NReplications <= 0 {
		return nil, fmt.Errorf("vecm: replications must be > 0, got %d", opts.NReplications)
	}
	if opts.Horizon < 0 {
		return nil, fmt.Errorf("vecm: horizon must be >= 0, got %d", opts.Horizon)
	}
	if opts.Alpha <= 0 || opts.Alpha >= 1 {
		return nil, fmt.Errorf("vecm: band alpha must be in (0,1), got %g", opts.Alpha)
	}

	T, K := Y.Dims()
	level := m.LevelVAR()
	p := level.Model.Lags
	if T <= p {
		return nil, fmt.Errorf("vecm: need at least p+1 observations: p = %d, T = %d", p, T)
	}

	point := make([]*mat.Dense, K)
	for s := 0; s < K; s++ {
		irf, err := level.IRF(opts.Horizon, s)
		if err != nil {
			return nil, err
		}
		point[s] = irf
	}

	U := m.Residuals
	if U == nil {
		return nil, fmt.Errorf("vecm: model carries no residuals")
	}
	nRes, _ := U.Dims()

	// Per-replication seeds from a master generator, fixed before any
	// worker starts.
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, opts.NReplications)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	workers := runtime.NumCPU()
	if workers > opts.NReplications {
		workers = opts.NReplications
	}

	jobs := make(chan int, opts.NReplications)
	results := make(chan bootstrapDraw, opts.NReplications)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := range jobs {
				rng := rand.New(rand.NewSource(seeds[rep]))
				results <- m.replicate(Y, level, U, nRes, rng, opts.Horizon)
			}
		}()
	}

	for rep := 0; rep < opts.NReplications; rep++ {
		jobs <- rep
	}
	close(jobs)
	wg.Wait()
	close(results)

	draws := make([][]*mat.Dense, K)
	failed := 0
	for res := range results {
		if !res.ok {
			failed++
			continue
		}
		for s := 0; s < K; s++ {
			draws[s] = append(draws[s], res.irfs[s])
		}
	}

	if failed == opts.NReplications {
		return nil, fmt.Errorf("vecm: all %d bootstrap replications failed", opts.NReplications)
	}

	bands := make(map[int]*IRFBand, K)
	qLo := opts.Alpha / 2.0
	qHi := 1.0 - opts.Alpha/2.0
	for s := 0; s < K; s++ {
		lower := mat.NewDense(opts.Horizon+1, K, nil)
		upper := mat.NewDense(opts.Horizon+1, K, nil)
		vals := make([]float64, len(draws[s]))
		for h := 0; h <= opts.Horizon; h++ {
			for k := 0; k < K; k++ {
				for i, d := range draws[s] {
					vals[i] = d.At(h, k)
				}
				lower.Set(h, k, bootstrapQuantile(vals, qLo))
				upper.Set(h, k, bootstrapQuantile(vals, qHi))
			}
		}
		bands[s] = &IRFBand{
			Shock:   s,
			Horizon: opts.Horizon,
			Alpha:   opts.Alpha,
			Point:   point[s],
			Lower:   lower,
			Upper:   upper,
			Failed:  failed,
		}
	}
	return bands, nil
}

// replicate runs one bootstrap replication: simulate, re-estimate, and
// compute the impulse responses of the re-estimated model.
func (m *VECM) replicate(Y *mat.Dense, level *VAR, U *mat.Dense, nRes int, rng *rand.Rand, horizon int) bootstrapDraw {
	T, K := Y.Dims()
	p := level.Model.Lags

	sim := mat.NewDense(T, K, nil)
	for t := 0; t < p; t++ {
		for k := 0; k < K; k++ {
			sim.Set(t, k, Y.At(t, k))
		}
	}
	for t := p; t < T; t++ {
		row := rng.Intn(nRes)
		for eq := 0; eq < K; eq++ {
			sim.Set(t, eq, level.fittedAt(sim, t, eq)+U.At(row, eq))
		}
	}

	re, err := EstimateVECM(sim, m.Names, m.Lags, m.Rank, m.Deterministic)
	if err != nil {
		return bootstrapDraw{}
	}
	lv := re.LevelVAR()

	irfs := make([]*mat.Dense, K)
	for s := 0; s < K; s++ {
		irf, err := lv.IRF(horizon, s)
		if err != nil {
			return bootstrapDraw{}
		}
		irfs[s] = irf
	}
	return bootstrapDraw{irfs: irfs, ok: true}
}

// bootstrapQuantile returns the q-th quantile of vals using linear
// interpolation between order statistics.
func bootstrapQuantile(vals []float64, q float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	pos := q * float64(n-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1.0-frac) + sorted[hi]*frac
}
