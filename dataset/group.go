package dataset

// Group lists the rows belonging to one piece, in table order
type Group struct {
	Piece string
	Rows  []int
}

// Groups partitions the rows by piece. Pieces appear in order of first
// occurrence.
func (t *Table) Groups() []Group {
	var groups []Group
	pos := make(map[string]int)
	for i, k := range t.keys {
		g, ok := pos[k.Piece]
		if !ok {
			g = len(groups)
			pos[k.Piece] = g
			groups = append(groups, Group{Piece: k.Piece})
		}
		groups[g].Rows = append(groups[g].Rows, i)
	}
	return groups
}

// Pieces returns the distinct piece names in order of first occurrence
func (t *Table) Pieces() []string {
	groups := t.Groups()
	pieces := make([]string, len(groups))
	for i, g := range groups {
		pieces[i] = g.Piece
	}
	return pieces
}
