package core

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failures surfaced through the RPC error channel.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindMissingParameter
	KindMalformedParameter
	KindUnauthorized
	KindMetadataFormatInvalid
	KindUnsupported
	KindParseError
	KindInvalidRequest
	KindRateLimited
	KindUserNotFound
	KindExistingUserInRoom
	KindUserNotStreaming
	KindRoomNotFound
	KindMediaSDP
	KindMediaEndpoint
)

var kindCodes = map[ErrorKind]int{
	KindGeneric:               999,
	KindMissingParameter:      999,
	KindMalformedParameter:    999,
	KindUnauthorized:          401,
	KindMetadataFormatInvalid: 500,
	KindUnsupported:           -32601,
	KindParseError:            -32700,
	KindInvalidRequest:        -32600,
	KindRateLimited:           429,
	KindUserNotFound:          102,
	KindExistingUserInRoom:    104,
	KindUserNotStreaming:      105,
	KindRoomNotFound:          202,
	KindMediaSDP:              302,
	KindMediaEndpoint:         303,
}

var kindNames = map[ErrorKind]string{
	KindGeneric:               "generic",
	KindMissingParameter:      "missing_parameter",
	KindMalformedParameter:    "malformed_parameter",
	KindUnauthorized:          "unauthorized",
	KindMetadataFormatInvalid: "metadata_format_invalid",
	KindUnsupported:           "unsupported",
	KindParseError:            "parse_error",
	KindInvalidRequest:        "invalid_request",
	KindRateLimited:           "rate_limited",
	KindUserNotFound:          "user_not_found",
	KindExistingUserInRoom:    "existing_user_in_room",
	KindUserNotStreaming:      "user_not_streaming",
	KindRoomNotFound:          "room_not_found",
	KindMediaSDP:              "media_sdp",
	KindMediaEndpoint:         "media_endpoint",
}

func (k ErrorKind) Code() int { return kindCodes[k] }

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a failure with a protocol error code. Two errors match under
// errors.Is when their kinds are equal.
type Error struct {
	Kind    ErrorKind
	Message string
	// Param names the offending request parameter, if any.
	Param string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Code() int { return e.Kind.Code() }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingParameter      = &Error{Kind: KindMissingParameter, Message: "missing parameter"}
	ErrMalformedParameter    = &Error{Kind: KindMalformedParameter, Message: "malformed parameter"}
	ErrUnauthorized          = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrMetadataFormatInvalid = &Error{Kind: KindMetadataFormatInvalid, Message: "metadata format invalid"}
	ErrUnsupported           = &Error{Kind: KindUnsupported, Message: "unsupported method"}
	ErrRateLimited           = &Error{Kind: KindRateLimited, Message: "too many requests"}
	ErrUserNotFound          = &Error{Kind: KindUserNotFound, Message: "user not found"}
	ErrExistingUserInRoom    = &Error{Kind: KindExistingUserInRoom, Message: "user already in room"}
	ErrUserNotStreaming      = &Error{Kind: KindUserNotStreaming, Message: "user not streaming"}
	ErrRoomNotFound          = &Error{Kind: KindRoomNotFound, Message: "room not found"}
	ErrMediaSDP              = &Error{Kind: KindMediaSDP, Message: "sdp negotiation failed"}
	ErrMediaEndpoint         = &Error{Kind: KindMediaEndpoint, Message: "media endpoint not found"}
)

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches cause to a new error of the given kind.
func WrapError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

func MissingParameter(key string) *Error {
	return &Error{Kind: KindMissingParameter, Message: fmt.Sprintf("request element '%s' is missing", key), Param: key}
}

func MalformedParameter(key string, cause error) *Error {
	return &Error{Kind: KindMalformedParameter, Message: fmt.Sprintf("request element '%s' is malformed", key), Param: key, cause: cause}
}

// AsError returns err as an *Error, wrapping anything else as generic.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindGeneric, Message: "internal error", cause: err}
}
