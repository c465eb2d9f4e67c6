package timeline

import "github.com/alexanderramin/eventboard/internal/dates"

// Segment is the run of scheduled tasks under one category or stage
// header. It is the unit of a bulk drag and the extent of the header's
// aggregate bar.
type Segment struct {
	HeaderID string
	Kind     RowKind
	TaskIDs  []string
	Start    dates.LocalDay
	End      dates.LocalDay
}

func (s Segment) Contains(taskID string) bool {
	for _, id := range s.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// SegmentAt walks forward from the header at index and collects the
// scheduled tasks it owns. A category segment ends at the first header or
// placeholder row. A stage segment spans its categories and ends at the
// next stage or section header. Unscheduled item rows are skipped. The
// second result is false when index is not a category or stage header or
// the segment holds no scheduled task.
func SegmentAt(rows []Row, index int) (Segment, bool) {
	if index < 0 || index >= len(rows) {
		return Segment{}, false
	}
	header := rows[index]
	if header.Kind != RowCategory && header.Kind != RowStage {
		return Segment{}, false
	}

	seg := Segment{HeaderID: header.ID, Kind: header.Kind}
	for i := index + 1; i < len(rows); i++ {
		r := rows[i]
		if header.Kind == RowCategory && !r.IsTask() {
			break
		}
		if header.Kind == RowStage && (r.Kind == RowStage || r.Kind == RowSection) {
			break
		}
		if !r.IsTask() || r.Task == nil {
			continue
		}
		start, end := r.Task.Span()
		if len(seg.TaskIDs) == 0 || start.Before(seg.Start) {
			seg.Start = start
		}
		if len(seg.TaskIDs) == 0 || end.After(seg.End) {
			seg.End = end
		}
		seg.TaskIDs = append(seg.TaskIDs, r.Task.ID)
	}
	if len(seg.TaskIDs) == 0 {
		return Segment{}, false
	}
	return seg, true
}
