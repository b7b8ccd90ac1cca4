package enum

// SelectionType is how options of a modifier group are picked.
type SelectionType string

const (
	SelectionSingle   SelectionType = "single"
	SelectionMultiple SelectionType = "multiple"
)

func (t SelectionType) IsValid() bool {
	return t == SelectionSingle || t == SelectionMultiple
}
