package projects

import (
	"encoding/json"
	"slices"
)

// Type identifies the annotation shape a project collects.
type Type string

// Valid project types.
const (
	TypeTextClassification  Type = "text_classification"
	TypeSequenceLabeling    Type = "sequence_labeling"
	TypeSeq2seq             Type = "seq2seq"
	TypeSpeechToText        Type = "speech_to_text"
	TypeImageClassification Type = "image_classification"
)

var types = []Type{
	TypeTextClassification,
	TypeSequenceLabeling,
	TypeSeq2seq,
	TypeSpeechToText,
	TypeImageClassification,
}

// Types returns the list of valid project types.
func Types() []Type {
	return types
}

// FileBased reports whether examples in this project type carry an uploaded
// file rather than inline text.
func (t Type) FileBased() bool {
	return t == TypeSpeechToText || t == TypeImageClassification
}

// UnmarshalJSON validates that the decoded string is a known project type.
func (t *Type) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Type(raw)
	if !slices.Contains(types, v) {
		return ErrInvalidType
	}
	*t = v
	return nil
}

// ParseType validates a string as a known project type.
// Returns ErrInvalidType if the value is not recognized.
func ParseType(s string) (Type, error) {
	v := Type(s)
	if !slices.Contains(types, v) {
		return "", ErrInvalidType
	}
	return v, nil
}
