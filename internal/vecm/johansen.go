// Authors: Carlos Bello, Daniela Herrera
// Date: May 1st 2026
// Project: A VECM-based Cointegration Analysis of US Housing Prices and Consumer Sentiment
// Class: 02-613 at Caregie Mellon University

package vecm

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Johansen trace test 5% critical values for the unrestricted-constant
// case, indexed by the number of remaining relations K-r. Zero means no
// tabulated value.
var traceCrit5 = map[int]float64{
	1: 3.8415,
	2: 15.4947,
}

// EstimateVECM fits a vector error correction model by reduced-rank
// maximum likelihood. Y holds the levels, lags is the number of lagged
// difference terms, and rank is the imposed cointegration rank. The
// cointegrating vectors come from the Johansen eigenvalue problem; the
// loadings, short-run matrices, and their standard errors come from a
// second-stage least squares fit of the differences on the error
// correction terms.
func EstimateVECM(Y *mat.Dense, names []string, lags, rank int, det Deterministic) (*VECM, error) {
	if Y == nil {
		return nil, fmt.Errorf("vecm: data not provided")
	}
	if lags < 0 {
		return nil, fmt.Errorf("vecm: lags must be >= 0, got %d", lags)
	}

	T, K := Y.Dims()
	if K < 2 {
		return nil, fmt.Errorf("vecm: need at least 2 variables, got %d", K)
	}
	if rank < 1 || rank >= K {
		return nil, fmt.Errorf("vecm: rank must be between 1 and %d, got %d", K-1, rank)
	}
	if len(names) != K {
		return nil, fmt.Errorf("vecm: %d names for %d columns", len(names), K)
	}

	p := lags
	Te := T - 1 - p
	detCols := det.columns()
	m := detCols + rank + p*K
	if Te <= m {
		return nil, fmt.Errorf("vecm: %d effective observations cannot support %d coefficients per equation", Te, m)
	}

	// First differences of the full sample.
	dY := mat.NewDense(T-1, K, nil)
	for t := 0; t < T-1; t++ {
		for k := 0; k < K; k++ {
			dY.Set(t, k, Y.At(t+1, k)-Y.At(t, k))
		}
	}

	// Z0: current differences. Z1: lagged levels entering the error
	// correction term. W: short-run regressors to concentrate out.
	Z0 := mat.NewDense(Te, K, nil)
	Z1 := mat.NewDense(Te, K, nil)
	for i := 0; i < Te; i++ {
		d := p + i
		for k := 0; k < K; k++ {
			Z0.Set(i, k, dY.At(d, k))
			Z1.Set(i, k, Y.At(d, k))
		}
	}

	wCols := detCols + p*K
	var W *mat.Dense
	if wCols > 0 {
		W = mat.NewDense(Te, wCols, nil)
		for i := 0; i < Te; i++ {
			fillShortRun(W, dY, i, p, det)
		}
	}

	R0, R1 := Z0, Z1
	if W != nil {
		var err error
		if R0, err = concentrate(Z0, W); err != nil {
			return nil, fmt.Errorf("vecm: %v", err)
		}
		if R1, err = concentrate(Z1, W); err != nil {
			return nil, fmt.Errorf("vecm: %v", err)
		}
	}

	eigenvalues, betaAll, err := johansenEigen(R0, R1, Te)
	if err != nil {
		return nil, err
	}

	// Cointegrating vectors: the rank leading eigenvectors, normalized so
	// the first variable carries a unit coefficient.
	Beta := mat.NewDense(K, rank, nil)
	for c := 0; c < rank; c++ {
		pivot := betaAll.At(0, c)
		for k := 0; k < K; k++ {
			v := betaAll.At(k, c)
			if math.Abs(pivot) > 1e-10 {
				v /= pivot
			}
			Beta.Set(k, c, v)
		}
	}

	// Trace statistics for every candidate rank.
	trace := make([]TraceTest, K)
	for r := 0; r < K; r++ {
		stat := 0.0
		for i := r; i < K; i++ {
			stat += math.Log(1.0 - eigenvalues[i])
		}
		trace[r] = TraceTest{
			Rank:      r,
			Statistic: -float64(Te) * stat,
			Critical5: traceCrit5[K-r],
		}
	}

	// Second stage: regress the differences on the deterministic terms,
	// the error correction terms, and the lagged differences.
	Z := mat.NewDense(Te, m, nil)
	var ect mat.Dense
	ect.Mul(Z1, Beta)
	for i := 0; i < Te; i++ {
		col := 0
		if det.hasConst() {
			Z.Set(i, col, 1.0)
			col++
		}
		if det.hasTrend() {
			Z.Set(i, col, float64(p+i+2))
			col++
		}
		for c := 0; c < rank; c++ {
			Z.Set(i, col, ect.At(i, c))
			col++
		}
		for j := 1; j <= p; j++ {
			for k := 0; k < K; k++ {
				Z.Set(i, col, dY.At(p+i-j, k))
				col++
			}
		}
	}

	B, err := solveLS(Z, Z0)
	if err != nil {
		return nil, fmt.Errorf("vecm: %v", err)
	}

	var fitted mat.Dense
	fitted.Mul(Z, B)
	U := mat.NewDense(Te, K, nil)
	U.Sub(Z0, &fitted)

	SigmaU := covarianceOf(U, Te-m)

	var C *mat.Dense
	if detCols > 0 {
		C = mat.NewDense(K, detCols, nil)
		for eq := 0; eq < K; eq++ {
			for d := 0; d < detCols; d++ {
				C.Set(eq, d, B.At(d, eq))
			}
		}
	}

	Alpha := mat.NewDense(K, rank, nil)
	for eq := 0; eq < K; eq++ {
		for c := 0; c < rank; c++ {
			Alpha.Set(eq, c, B.At(detCols+c, eq))
		}
	}

	Gamma := make([]*mat.Dense, p)
	for j := 0; j < p; j++ {
		G := mat.NewDense(K, K, nil)
		offset := detCols + rank + j*K
		for eq := 0; eq < K; eq++ {
			for k := 0; k < K; k++ {
				G.Set(eq, k, B.At(offset+k, eq))
			}
		}
		Gamma[j] = G
	}

	alphaSE, alphaStat, alphaP, err := loadingInference(Z, SigmaU, Alpha, detCols)
	if err != nil {
		return nil, err
	}

	nm := make([]string, K)
	copy(nm, names)

	return &VECM{
		Names:         nm,
		Lags:          lags,
		Rank:          rank,
		Deterministic: det,
		Alpha:         Alpha,
		Beta:          Beta,
		Gamma:         Gamma,
		C:             C,
		AlphaSE:       alphaSE,
		AlphaStat:     alphaStat,
		AlphaP:        alphaP,
		SigmaU:        SigmaU,
		Residuals:     U,
		Eigenvalues:   eigenvalues,
		Trace:         trace,
		Obs:           Te,
	}, nil
}

// fillShortRun writes row i of the short-run regressor matrix:
// deterministic columns first, then the lagged difference blocks.
func fillShortRun(W, dY *mat.Dense, i, p int, det Deterministic) {
	_, K := dY.Dims()
	col := 0
	if det.hasConst() {
		W.Set(i, col, 1.0)
		col++
	}
	if det.hasTrend() {
		W.Set(i, col, float64(p+i+2))
		col++
	}
	for j := 1; j <= p; j++ {
		for k := 0; k < K; k++ {
			W.Set(i, col, dY.At(p+i-j, k))
			col++
		}
	}
}

// concentrate removes the least-squares projection of Z onto W.
func concentrate(Z, W *mat.Dense) (*mat.Dense, error) {
	B, err := solveLS(W, Z)
	if err != nil {
		return nil, err
	}
	var proj mat.Dense
	proj.Mul(W, B)
	rows, cols := Z.Dims()
	R := mat.NewDense(rows, cols, nil)
	R.Sub(Z, &proj)
	return R, nil
}

// johansenEigen solves the reduced-rank eigenvalue problem
// |lambda*S11 - S10*S00^-1*S01| = 0 and returns the eigenvalues sorted in
// decreasing order together with the matching columns of beta.
func johansenEigen(R0, R1 *mat.Dense, Te int) ([]float64, *mat.Dense, error) {
	_, K := R0.Dims()
	scale := 1.0 / float64(Te)

	var s00, s01, s11 mat.Dense
	s00.Mul(R0.T(), R0)
	s00.Scale(scale, &s00)
	s01.Mul(R0.T(), R1)
	s01.Scale(scale, &s01)
	s11.Mul(R1.T(), R1)
	s11.Scale(scale, &s11)

	s11sym := symmetrize(&s11)
	var chol mat.Cholesky
	if ok := chol.Factorize(s11sym); !ok {
		return nil, nil, fmt.Errorf("vecm: lagged-level moment matrix is not positive definite")
	}
	var L mat.TriDense
	chol.LTo(&L)

	var s00inv mat.Dense
	if err := s00inv.Inverse(&s00); err != nil {
		return nil, nil, fmt.Errorf("vecm: difference moment matrix is singular: %v", err)
	}

	// A = S10 * S00^-1 * S01, then M = L^-1 * A * L^-T.
	var tmp, A mat.Dense
	tmp.Mul(&s00inv, &s01)
	A.Mul(s01.T(), &tmp)

	var linvA mat.Dense
	if err := linvA.Solve(&L, &A); err != nil {
		return nil, nil, fmt.Errorf("vecm: triangular solve failed: %v", err)
	}
	var mT mat.Dense
	if err := mT.Solve(&L, linvA.T()); err != nil {
		return nil, nil, fmt.Errorf("vecm: triangular solve failed: %v", err)
	}
	M := symmetrize(mT.T())

	var eig mat.EigenSym
	if ok := eig.Factorize(M, true); !ok {
		return nil, nil, fmt.Errorf("vecm: eigenvalue decomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Sort eigenpairs by decreasing eigenvalue and clamp into [0, 1).
	order := make([]int, K)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return vals[order[a]] > vals[order[b]] })

	eigenvalues := make([]float64, K)
	sorted := mat.NewDense(K, K, nil)
	for c, idx := range order {
		lam := vals[idx]
		if lam < 0 {
			lam = 0
		}
		if lam >= 1 {
			lam = 1 - 1e-12
		}
		eigenvalues[c] = lam
		for r := 0; r < K; r++ {
			sorted.Set(r, c, vecs.At(r, idx))
		}
	}

	// Map the eigenvectors back through the Cholesky transform:
	// beta = L^-T * v.
	var betaAll mat.Dense
	if err := betaAll.Solve(L.T(), sorted); err != nil {
		return nil, nil, fmt.Errorf("vecm: triangular solve failed: %v", err)
	}

	out := mat.NewDense(K, K, nil)
	out.Copy(&betaAll)
	return eigenvalues, out, nil
}

// loadingInference computes standard errors, t statistics, and two-sided
// normal p-values for the error correction loadings.
func loadingInference(Z *mat.Dense, SigmaU *mat.SymDense, Alpha *mat.Dense, detCols int) (se, stat, pval *mat.Dense, err error) {
	var ztz mat.Dense
	ztz.Mul(Z.T(), Z)
	var inv mat.Dense
	if errInv := inv.Inverse(&ztz); errInv != nil {
		return nil, nil, nil, fmt.Errorf("vecm: regressor cross-product is singular: %v", errInv)
	}

	K, rank := Alpha.Dims()
	se = mat.NewDense(K, rank, nil)
	stat = mat.NewDense(K, rank, nil)
	pval = mat.NewDense(K, rank, nil)

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	for eq := 0; eq < K; eq++ {
		for c := 0; c < rank; c++ {
			v := SigmaU.At(eq, eq) * inv.At(detCols+c, detCols+c)
			s := math.NaN()
			if v > 0 {
				s = math.Sqrt(v)
			}
			se.Set(eq, c, s)

			t := Alpha.At(eq, c) / s
			stat.Set(eq, c, t)

			p := 2.0 * (1.0 - norm.CDF(math.Abs(t)))
			if p < 0 {
				p = 0
			}
			if p > 1 {
				p = 1
			}
			pval.Set(eq, c, p)
		}
	}
	return se, stat, pval, nil
}

// symmetrize averages a square matrix with its transpose.
func symmetrize(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return out
}

// Pi is the long-run impact matrix Alpha * Beta'.
func (m *VECM) Pi() *mat.Dense {
	var pi mat.Dense
	pi.Mul(m.Alpha, m.Beta.T())
	K, _ := m.Alpha.Dims()
	out := mat.NewDense(K, K, nil)
	out.Copy(&pi)
	return out
}

// ParamsPerEquation is the number of coefficients estimated in each
// short-run equation: deterministic terms, error correction loadings and
// the lagged difference blocks. Residual whiteness tests use it as the
// degrees-of-freedom correction.
func (m *VECM) ParamsPerEquation() int {
	K, _ := m.Alpha.Dims()
	return m.Deterministic.columns() + m.Rank + m.Lags*K
}

// LevelVAR rewrites the error correction model as an equivalent VAR in
// levels of order Lags+1. With Pi = Alpha*Beta' and short-run matrices
// Gamma_j the level coefficients are
//
//	A_1 = Pi + I + Gamma_1
//	A_i = Gamma_i - Gamma_{i-1}   for 1 < i < p
//	A_p = -Gamma_{p-1}
//
// collapsing to A_1 = I + Pi when there are no lagged differences.
func (m *VECM) LevelVAR() *VAR {
	K, _ := m.Alpha.Dims()
	p := m.Lags + 1
	pi := m.Pi()

	A := make([]*mat.Dense, p)
	for j := range A {
		A[j] = mat.NewDense(K, K, nil)
	}

	for i := 0; i < K; i++ {
		for j := 0; j < K; j++ {
			v := pi.At(i, j)
			if i == j {
				v += 1.0
			}
			if m.Lags > 0 {
				v += m.Gamma[0].At(i, j)
			}
			A[0].Set(i, j, v)
		}
	}
	for j := 2; j < p; j++ {
		A[j-1].Sub(m.Gamma[j-1], m.Gamma[j-2])
	}
	if p >= 2 {
		var last mat.Dense
		last.Scale(-1.0, m.Gamma[p-2])
		A[p-1].Copy(&last)
	}

	var C *mat.Dense
	if m.C != nil {
		r, c := m.C.Dims()
		C = mat.NewDense(r, c, nil)
		C.Copy(m.C)
	}

	var sigma *mat.SymDense
	if m.SigmaU != nil {
		sigma = mat.NewSymDense(K, nil)
		sigma.CopySym(m.SigmaU)
	}

	nm := make([]string, len(m.Names))
	copy(nm, m.Names)

	return &VAR{
		Model:  ModelSpec{Lags: p, Deterministic: m.Deterministic},
		Names:  nm,
		A:      A,
		C:      C,
		SigmaU: sigma,
	}
}
