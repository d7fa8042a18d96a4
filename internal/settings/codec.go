package settings

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrEmpty means there was nothing stored.
	ErrEmpty = errors.New("no stored settings")
	// ErrInvalid means a stored record was rejected.
	ErrInvalid = errors.New("invalid settings")
)

// Decode parses a stored record. It fails with ErrEmpty for an empty string
// and with an error wrapping ErrInvalid when the text is not a JSON object,
// a field is missing, a number is not a finite JSON number or the language
// is not recognized. Unknown keys are dropped.
func Decode(raw string) (*Settings, error) {
	if raw == "" {
		return nil, ErrEmpty
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errors.Wrapf(ErrInvalid, "malformed JSON: %v", err)
	}
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, errors.Wrap(ErrInvalid, "not an object")
	}

	number := func(key string) (float64, error) {
		v, ok := obj[key]
		if !ok {
			return 0, errors.Wrapf(ErrInvalid, "missing %s", key)
		}
		f, ok := v.(float64)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errors.Wrapf(ErrInvalid, "%s is not a finite number", key)
		}
		return f, nil
	}

	var (
		s   Settings
		err error
	)
	if s.BeatInterval, err = number("beatInterval"); err != nil {
		return nil, err
	}
	if s.BeatOffset, err = number("beatOffset"); err != nil {
		return nil, err
	}
	if s.FPS, err = number("fps"); err != nil {
		return nil, err
	}
	if s.BPM, err = number("bpm"); err != nil {
		return nil, err
	}
	if s.FrameOffset, err = number("frameOffset"); err != nil {
		return nil, err
	}

	lang, _ := obj["lang"].(string)
	s.Lang = Language(lang)
	if !s.Lang.Valid() {
		return nil, errors.Wrapf(ErrInvalid, "unknown language %v", obj["lang"])
	}

	return &s, nil
}

// Encode serializes s as a JSON object with the six stored keys.
func Encode(s Settings) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, "encoding settings")
	}
	return string(data), nil
}
