package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Annotation is one oriented bounding box: a class id and the four corner
// points of the box in YOLO-OBB order.
type Annotation struct {
	Class  int
	Coords [8]float64 // x1 y1 x2 y2 x3 y3 x4 y4
}

// ParseAnnotation parses one YOLO-OBB label line:
//
//	class x1 y1 x2 y2 x3 y3 x4 y4
func ParseAnnotation(line string) (Annotation, error) {
	fields := strings.Fields(line)
	if len(fields) != 9 {
		return Annotation{}, fmt.Errorf("dataset: annotation has %d fields, want 9", len(fields))
	}

	class, err := strconv.Atoi(fields[0])
	if err != nil || class < 0 {
		return Annotation{}, fmt.Errorf("dataset: bad class id %q", fields[0])
	}

	ann := Annotation{Class: class}
	for i := 0; i < 8; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return Annotation{}, fmt.Errorf("dataset: bad coordinate %q: %w", fields[i+1], err)
		}
		ann.Coords[i] = v
	}
	return ann, nil
}

// String formats the annotation as a label-file line with six-decimal
// coordinates, the precision normalized datasets are written with.
func (a Annotation) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(a.Class))
	for _, c := range a.Coords {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(c, 'f', 6, 64))
	}
	return b.String()
}
