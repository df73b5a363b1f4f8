package materials

// Material is immutable reference data: what a crew consumes, and how it is
// measured («м», «шт», «кг»).
type Material struct {
	ID   int64
	Name string
	Unit string
}
