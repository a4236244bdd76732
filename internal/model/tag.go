package model

// Tag is a named label that can be applied to files.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Value qualifies a tag applied to a file, as in "year=2024".
// Stored ids start at 1; 0 means "no value" in tagging and implication rows.
type Value struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Implication states that a file tagged Tag (with Value, when set) is also
// considered tagged ImpliedTag (with ImpliedValue, when set).
type Implication struct {
	Tag          Tag   `json:"tag"`
	Value        Value `json:"value"`
	ImpliedTag   Tag   `json:"implied_tag"`
	ImpliedValue Value `json:"implied_value"`
}

// String renders the implication as "tag[=value] -> tag[=value]".
func (i Implication) String() string {
	return pair(i.Tag, i.Value) + " -> " + pair(i.ImpliedTag, i.ImpliedValue)
}

func pair(t Tag, v Value) string {
	if v.ID == 0 {
		return t.Name
	}
	return t.Name + "=" + v.Name
}
