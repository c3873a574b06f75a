package model

// Template is a read-only snapshot of the object being duplicated.
type Template struct {
	Name      string
	Base      Transform
	Groupable bool
	Parent    string // host path of the current parent, "" = scene root
}

// DuplicateSpec describes one copy to instantiate.
type DuplicateSpec struct {
	Index     int
	Name      string
	Transform Transform
}

// Copy count limits shared by every arrangement.
const (
	MinCount = 1
	MaxCount = 1000
)

// CheckCount rejects counts outside [MinCount, MaxCount].
func CheckCount(count int) error {
	if count < MinCount || count > MaxCount {
		return Invalidf("count %d outside [%d, %d]", count, MinCount, MaxCount)
	}
	return nil
}
