// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type DropError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type QuotaError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyConsumed         = DropError("event already consumed")
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrAutoRepeat              = DropError("auto repeat event")
	ErrInvalidConfiguration    = InvalidError("configuration did not return a table")
	ErrInvalidFrequency        = InvalidError("invalid target frequency")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidMemoryPages      = InvalidError("invalid memory page count")
	ErrInvalidSectorKey        = InvalidError("invalid sector key")
	ErrInvalidStoreType        = InvalidError("invalid store type")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrInvalidVariant          = InvalidError("invalid machine variant")
	ErrImageSizeNotSectorSized = LengthError("image size is not a multiple of the sector size")
	ErrImageEmpty              = LengthError("image is empty")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrNotReady                = ProcessError("disk image not loaded and restored")
	ErrPersistenceUnavailable  = NotFoundError("persistent storage is not available")
	ErrQuotaExceeded           = QuotaError("persistent storage quota exceeded")
	ErrSectorDataLength        = RecordError("sector data length is invalid")
	ErrSectorOutOfRange        = RecordError("sector index is outside the image")
	ErrStoreClosed             = ProcessError("store is closed")
	ErrUnmappedInput           = DropError("input symbol is not mapped")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e DropError) Error() string     { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e QuotaError) Error() string    { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrDrop(e error) bool     { _, ok := e.(DropError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrQuota(e error) bool    { _, ok := e.(QuotaError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
