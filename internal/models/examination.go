package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Examination is the read-only entity a task refers to
type Examination struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             LocalizedText      `bson:"name" json:"name"`
	Description      LocalizedText      `bson:"description" json:"description"`
	ShortDescription LocalizedText      `bson:"shortDescription" json:"shortDescription"`
}

// LocalizedText holds either every translation of a text, keyed by language
// code, or the single translation projected for one language.
// The zero value is a missing text and encodes to JSON null.
type LocalizedText struct {
	Translations map[string]string
	Text         *string
}

// Translations builds a LocalizedText from a language→text mapping
func Translations(values map[string]string) LocalizedText {
	return LocalizedText{Translations: values}
}

// Text builds a LocalizedText holding a single projected translation
func Text(value string) LocalizedText {
	return LocalizedText{Text: &value}
}

// IsZero reports whether neither translations nor a projected text are present
func (l LocalizedText) IsZero() bool {
	return l.Translations == nil && l.Text == nil
}

// UnmarshalBSONValue accepts an embedded document, a string, or null
func (l *LocalizedText) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.String:
		s := raw.StringValue()
		l.Text, l.Translations = &s, nil
	case bsontype.EmbeddedDocument:
		translations := make(map[string]string)
		if err := raw.Unmarshal(&translations); err != nil {
			return fmt.Errorf("failed to decode translations: %w", err)
		}
		l.Translations, l.Text = translations, nil
	case bsontype.Null, bsontype.Undefined:
		*l = LocalizedText{}
	default:
		return fmt.Errorf("cannot decode %s into LocalizedText", t)
	}
	return nil
}

// MarshalJSON writes the projected text, the translation object, or null
func (l LocalizedText) MarshalJSON() ([]byte, error) {
	switch {
	case l.Text != nil:
		return json.Marshal(*l.Text)
	case l.Translations != nil:
		return json.Marshal(l.Translations)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON mirrors MarshalJSON
func (l *LocalizedText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = LocalizedText{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		l.Text, l.Translations = &s, nil
		return nil
	}
	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return err
	}
	l.Translations, l.Text = translations, nil
	return nil
}
