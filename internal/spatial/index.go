package spatial

// Index is a uniform spatial hash answering "is anything closer than the
// separation" in constant time. The cell size equals the separation, so any
// conflicting point lives in the 3x3 block of cells around the query.
type Index struct {
	separation int
	cells      map[cellKey][]entry
}

type cellKey struct {
	cx, cy int
}

type entry struct {
	id  int
	pos Coordinate
}

func NewIndex(separation int) *Index {
	if separation < 1 {
		separation = 1
	}
	return &Index{
		separation: separation,
		cells:      make(map[cellKey][]entry),
	}
}

func (ix *Index) key(c Coordinate) cellKey {
	return cellKey{cx: c.X / ix.separation, cy: c.Y / ix.separation}
}

// Insert records id at pos. Ids are caller-defined and only used to skip a
// point when checking its own move.
func (ix *Index) Insert(id int, pos Coordinate) {
	k := ix.key(pos)
	ix.cells[k] = append(ix.cells[k], entry{id: id, pos: pos})
}

// Remove deletes id from the cell holding pos.
func (ix *Index) Remove(id int, pos Coordinate) {
	k := ix.key(pos)
	bucket := ix.cells[k]
	for i, e := range bucket {
		if e.id == id {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(ix.cells, k)
		return
	}
	ix.cells[k] = bucket
}

// Move relocates id from one position to another.
func (ix *Index) Move(id int, from, to Coordinate) {
	ix.Remove(id, from)
	ix.Insert(id, to)
}

// Free reports whether pos keeps at least the separation (Manhattan) from
// every indexed point other than ignoreID. Pass a negative ignoreID to check
// against everything.
func (ix *Index) Free(pos Coordinate, ignoreID int) bool {
	k := ix.key(pos)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, e := range ix.cells[cellKey{cx: k.cx + dx, cy: k.cy + dy}] {
				if e.id == ignoreID {
					continue
				}
				if e.pos.Manhattan(pos) < ix.separation {
					return false
				}
			}
		}
	}
	return true
}

func (ix *Index) Len() int {
	n := 0
	for _, bucket := range ix.cells {
		n += len(bucket)
	}
	return n
}
