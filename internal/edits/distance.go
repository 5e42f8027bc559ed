package edits

// Distance returns the restricted Damerau-Levenshtein (optimal string
// alignment) distance between a and b, counting runes. Insertion, deletion,
// substitution and adjacent transposition each cost 1.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < x {
					x = t
				}
			}
			curr[j] = x
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}
