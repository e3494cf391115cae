package repository

import "errors"

// ErrDuplicateID is returned by Insert when a record with the same primary key
// already exists. Implementations translate their driver's unique-violation
// error into this sentinel.
var ErrDuplicateID = errors.New("transcription id already exists")
