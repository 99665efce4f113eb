package types

import "errors"

// ResultCode is the stable, narrow taxonomy every operation in this module
// reduces its outcome to. Callers that need the code rather than just the
// error value can recover it with errors.Is against the sentinels below.
type ResultCode int

const (
	ResultSuccess ResultCode = iota
	ResultFailure
	ResultInvalidHandle
	ResultInvalidParameters
	ResultInvalidInputSize
	ResultInvalidPadding
	ResultBufferTooSmall
	ResultNoSuchItem
	ResultItemAlreadyProvisioned
	ResultItemNonRemovable
	ResultVerificationFailed
	ResultUnimplementedFeature
)

var (
	ErrFailure                 = errors.New("rdkcryptoapi: failure")
	ErrInvalidHandle           = errors.New("rdkcryptoapi: invalid handle")
	ErrInvalidParameters       = errors.New("rdkcryptoapi: invalid parameters")
	ErrInvalidInputSize        = errors.New("rdkcryptoapi: invalid input size")
	ErrInvalidPadding          = errors.New("rdkcryptoapi: invalid padding")
	ErrBufferTooSmall          = errors.New("rdkcryptoapi: buffer too small")
	ErrNoSuchItem              = errors.New("rdkcryptoapi: no such item")
	ErrItemAlreadyProvisioned  = errors.New("rdkcryptoapi: item already provisioned")
	ErrItemNonRemovable        = errors.New("rdkcryptoapi: item non-removable")
	ErrVerificationFailed      = errors.New("rdkcryptoapi: verification failed")
	ErrUnimplementedFeature    = errors.New("rdkcryptoapi: unimplemented feature")
)

// resultErrors maps each ResultCode to its sentinel, for code callers that
// only have a ResultCode in hand (e.g. from a test vector table).
var resultErrors = map[ResultCode]error{
	ResultSuccess:                nil,
	ResultFailure:                ErrFailure,
	ResultInvalidHandle:          ErrInvalidHandle,
	ResultInvalidParameters:      ErrInvalidParameters,
	ResultInvalidInputSize:       ErrInvalidInputSize,
	ResultInvalidPadding:         ErrInvalidPadding,
	ResultBufferTooSmall:         ErrBufferTooSmall,
	ResultNoSuchItem:             ErrNoSuchItem,
	ResultItemAlreadyProvisioned: ErrItemAlreadyProvisioned,
	ResultItemNonRemovable:       ErrItemNonRemovable,
	ResultVerificationFailed:     ErrVerificationFailed,
	ResultUnimplementedFeature:   ErrUnimplementedFeature,
}

// Err returns the sentinel error for code, or nil for ResultSuccess.
func (c ResultCode) Err() error {
	return resultErrors[c]
}

// CodeOf recovers the ResultCode a sentinel error corresponds to, walking
// the errors.Is chain. It returns ResultFailure for any non-nil error that
// does not match a known sentinel.
func CodeOf(err error) ResultCode {
	if err == nil {
		return ResultSuccess
	}
	for code, sentinel := range resultErrors {
		if sentinel != nil && errors.Is(err, sentinel) {
			return code
		}
	}
	return ResultFailure
}
