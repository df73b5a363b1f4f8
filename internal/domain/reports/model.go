package reports

// MaterialLine is one consumed-materials entry of a report.
type MaterialLine struct {
	MaterialID int64   `json:"material_id"`
	Qty        float64 `json:"qty"`
}

// Report is the per-task completion record. Materials and Photos are owned
// ordered collections here; they are serialized to JSON only at the
// persistence boundary.
type Report struct {
	TaskID        int64
	Comment       string
	Materials     []MaterialLine
	Photos        []string
	CommentDone   bool
	PhotosDone    bool
	MaterialsDone bool
}

func (r *Report) Complete() bool {
	return r.CommentDone && r.PhotosDone && r.MaterialsDone
}
