package fec

// SolveGF2 recovers the frames behind drops by Gaussian elimination over
// GF(2). It succeeds whenever the drops' incidence matrix has full column
// rank, which is a superset of what peeling can resolve; the evaluation
// harness uses it as the upper bound for a given set of drops.
func SolveGF2(scheme Scheme, drops []Drop) ([]BitVector, bool) {
	K := scheme.FrameCount
	if K <= 0 || len(drops) < K {
		return nil, false
	}
	// Build rows (vec, data)
	type row struct {
		vec  []byte
		data BitVector
	}
	rows := make([]row, 0, len(drops))
	for _, d := range drops {
		if d.Value.Len() != scheme.FrameSize {
			continue
		}
		positions, err := scheme.Positions(d.Seed)
		if err != nil || len(positions) == 0 {
			continue
		}
		v := make([]byte, K)
		for _, p := range positions {
			v[p] = 1
		}
		rows = append(rows, row{v, d.Value.clone()})
	}
	if len(rows) < K {
		return nil, false
	}
	m := len(rows)
	r := 0
	for c := 0; c < K && r < m; c++ {
		pr := -1
		for i := r; i < m; i++ {
			if rows[i].vec[c] != 0 {
				pr = i
				break
			}
		}
		if pr == -1 {
			continue
		}
		rows[r], rows[pr] = rows[pr], rows[r]
		// eliminate others
		for i := 0; i < m; i++ {
			if i == r || rows[i].vec[c] == 0 {
				continue
			}
			xorBytes(rows[i].vec, rows[r].vec)
			xorBytes(rows[i].data.data, rows[r].data.data)
		}
		r++
	}
	if r < K {
		return nil, false
	}
	// after full elimination the first K rows are the unit vectors in order
	out := make([]BitVector, K)
	for i := 0; i < K; i++ {
		if rows[i].vec[i] != 1 {
			return nil, false
		}
		out[i] = rows[i].data
	}
	return out, true
}
