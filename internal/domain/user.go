// Package domain contains entity without logic, just meta-data
package domain

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	MaxUsernameLen = 36
	// StreamSeparator joins a participant name and a stream tag ("alice_webcam").
	StreamSeparator = "_"
	DefaultStream   = "webcam"
)

var (
	ErrUsernameTooLong  = errors.New("username too long")
	ErrUsernameEmpty    = errors.New("username empty")
	ErrUsernameReserved = errors.New("username contains stream separator")
	ErrMetadataFormat   = errors.New("metadata must be a JSON object")
	ErrMetadataTooLong  = errors.New("metadata too long")
)

var validate = validator.New()

// NewUserName allocates a random participant name. Names never contain the
// stream separator so "<name>_<tag>" identifiers stay unambiguous.
func NewUserName() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "user" + id[:12]
}

func ValidateUserName(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	if strings.Contains(name, StreamSeparator) {
		return ErrUsernameReserved
	}
	return nil
}

// StreamID is the public identifier of a participant's stream.
func StreamID(name string) string {
	return name + StreamSeparator + DefaultStream
}

// ValidateMetadata accepts an empty string or a JSON object no longer than maxLen bytes.
func ValidateMetadata(metadata string, maxLen int) error {
	if metadata == "" {
		return nil
	}
	if maxLen > 0 && len(metadata) > maxLen {
		return ErrMetadataTooLong
	}
	if err := validate.Var(metadata, "json"); err != nil {
		return err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(metadata), &obj); err != nil || obj == nil {
		return ErrMetadataFormat
	}
	return nil
}
