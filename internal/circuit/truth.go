package circuit

// Row is one line of a truth table.
type Row struct {
	Inputs []bool
	Output bool
}

// TruthTable evaluates e for all 2^n input vectors. Row i holds the vector
// whose switch 0 is the most significant bit of i.
func TruthTable(e Expression, n int) []Row {
	if n < 0 {
		return nil
	}
	rows := make([]Row, 0, 1<<n)
	for i := 0; i < 1<<n; i++ {
		in := Vector(i, n)
		rows = append(rows, Row{Inputs: in, Output: e.Evaluate(in)})
	}
	return rows
}

// Vector expands the bits of i into n switch values, switch 0 first.
func Vector(i, n int) []bool {
	v := make([]bool, n)
	for k := 0; k < n; k++ {
		v[k] = i&(1<<(n-1-k)) != 0
	}
	return v
}

// Satisfiable reports whether some n-input vector makes e evaluate to want.
func Satisfiable(e Expression, n int, want bool) bool {
	for i := 0; i < 1<<n; i++ {
		if e.Evaluate(Vector(i, n)) == want {
			return true
		}
	}
	return false
}

// Distance returns the fewest switch flips from start to any vector where e
// evaluates to want, or -1 when no such vector exists.
func Distance(e Expression, start []bool, want bool) int {
	n := len(start)
	best := -1
	for i := 0; i < 1<<n; i++ {
		v := Vector(i, n)
		if e.Evaluate(v) != want {
			continue
		}
		d := 0
		for k := range v {
			if v[k] != start[k] {
				d++
			}
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
