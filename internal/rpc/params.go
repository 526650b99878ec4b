package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Params is the flat key/value parameter set of a request. A nil Params
// means the request carried no parameters at all.
type Params map[string]json.RawMessage

// ParseParams accepts an absent or null parameter set, or a JSON object.
func ParseParams(raw json.RawMessage) (Params, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var p Params
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, core.WrapError(core.KindInvalidRequest, err, "params must be an object")
	}
	return p, nil
}

func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && !isNull(v)
}

func (p Params) lookup(key string) (json.RawMessage, error) {
	if p == nil {
		return nil, core.MissingParameter(key)
	}
	v, ok := p[key]
	if !ok || isNull(v) {
		return nil, core.MissingParameter(key)
	}
	return v, nil
}

func (p Params) String(key string) (string, error) {
	v, err := p.lookup(key)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", core.MalformedParameter(key, err)
	}
	log.Trace().Str("module", "rpc").Str("param", key).Str("value", s).Msg("extracted")
	return s, nil
}

func (p Params) Int(key string) (int, error) {
	v, err := p.lookup(key)
	if err != nil {
		return 0, err
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, core.MalformedParameter(key, err)
	}
	return n, nil
}

func (p Params) Bool(key string) (bool, error) {
	v, err := p.lookup(key)
	if err != nil {
		return false, err
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false, core.MalformedParameter(key, err)
	}
	return b, nil
}

// OptionalBool returns def when key is absent.
func (p Params) OptionalBool(key string, def bool) (bool, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Bool(key)
}

// check runs the struct constraints of a decoded command. Presence has
// already been established by the extractor, so every violation is a
// malformed parameter.
func check(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return core.MalformedParameter(verrs[0].Field(), verrs[0])
	}
	return core.MalformedParameter("params", err)
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}
