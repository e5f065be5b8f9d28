package models

import (
	"encoding/json"
	"errors"
)

type ErrorKind int

const (
	MissingCredential ErrorKind = iota + 1
	InvalidCredential
	LocationNotFound
	UnknownFetchFailure
)

var (
	ErrMissingCredential   = errors.New("missing credential")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrLocationNotFound    = errors.New("location not found")
	ErrUnknownFetchFailure = errors.New("weather fetch failed")
)

func (k ErrorKind) String() string {
	switch k {
	case MissingCredential:
		return "missing_credential"
	case InvalidCredential:
		return "invalid_credential"
	case LocationNotFound:
		return "location_not_found"
	case UnknownFetchFailure:
		return "unknown_fetch_failure"
	default:
		return "unknown"
	}
}

func (k ErrorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Message is the user-facing text shown for a failure of this kind.
func (k ErrorKind) Message() string {
	switch k {
	case MissingCredential:
		return "Please enter your OpenWeatherMap API key to fetch weather data."
	case InvalidCredential:
		return "Invalid API key. Please check your OpenWeatherMap API key."
	case LocationNotFound:
		return "Location not found. Please try a different city name."
	default:
		return "Failed to fetch weather data. Please try again."
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingCredential:
		return ErrMissingCredential
	case InvalidCredential:
		return ErrInvalidCredential
	case LocationNotFound:
		return ErrLocationNotFound
	default:
		return ErrUnknownFetchFailure
	}
}

// FetchError is the terminal outcome of a failed fetch attempt.
type FetchError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewFetchError(kind ErrorKind, cause error) *FetchError {
	return &FetchError{
		Kind:    kind,
		Message: kind.Message(),
		Err:     cause,
	}
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return e.Kind.sentinel().Error() + ": " + e.Err.Error()
	}
	return e.Kind.sentinel().Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// AsFetchError classifies any error; errors that are not already a
// FetchError become UnknownFetchFailure.
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return NewFetchError(UnknownFetchFailure, err)
}
