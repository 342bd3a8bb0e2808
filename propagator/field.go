package propagator

import "fmt"

// Field is a two-slot wavefield buffer set. One slot holds the most recently
// computed time level ("current"), the other holds the level before it
// ("previous"). Stepping writes the next level into the previous slot and then
// toggles the role index; no data is ever copied between slots.
//
// After an even number of steps the slot that started as current is current
// again; after an odd number the roles are exchanged. Callers that keep
// references to the underlying slices must consult Current rather than their
// original variable names.
type Field struct {
	nx, ny int
	slots  [2][]float32
	cur    int
}

// NewField allocates a zero-filled buffer set for an nx*ny padded grid.
func NewField(nx, ny int) *Field {
	return &Field{
		nx: nx, ny: ny,
		slots: [2][]float32{
			make([]float32, nx*ny),
			make([]float32, nx*ny),
		},
	}
}

// FieldFromSlices wraps caller-owned current and previous buffers. The buffers
// are mutated in place during stepping and must each have length nx*ny.
func FieldFromSlices(current, previous []float32, nx, ny int) (*Field, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadExtent, nx, ny)
	}
	if len(current) != nx*ny || len(previous) != nx*ny {
		return nil, fmt.Errorf("%w: want %d, got current %d, previous %d",
			ErrBadExtent, nx*ny, len(current), len(previous))
	}
	return &Field{
		nx: nx, ny: ny,
		slots: [2][]float32{current, previous},
	}, nil
}

// NX returns the padded row stride.
func (f *Field) NX() int { return f.nx }

// NY returns the padded row count.
func (f *Field) NY() int { return f.ny }

// Current returns the buffer holding the most recently computed field.
func (f *Field) Current() []float32 { return f.slots[f.cur] }

// Previous returns the buffer holding the field one step older than Current.
// During a step it doubles as the output buffer for the next level.
func (f *Field) Previous() []float32 { return f.slots[f.cur^1] }

// swap exchanges the buffer roles. Pure relabeling.
func (f *Field) swap() { f.cur ^= 1 }

// At reads the current field at padded coordinates (row, col), row-major.
func (f *Field) At(row, col int) float32 {
	return f.slots[f.cur][row*f.nx+col]
}

// Set writes the current field at padded coordinates (row, col).
func (f *Field) Set(row, col int, v float32) {
	f.slots[f.cur][row*f.nx+col] = v
}

// AtInterior reads the current field at interior coordinates, mapping through
// the halo offset.
func (f *Field) AtInterior(row, col int) float32 {
	return f.At(row+Pad, col+Pad)
}
