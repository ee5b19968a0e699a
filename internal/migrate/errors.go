package migrate

import "errors"

var (
	ErrPathNotFound      = errors.New("path component not found")
	ErrPathAmbiguous     = errors.New("path component ambiguous")
	ErrAmbiguousName     = errors.New("ambiguous name in target folder")
	ErrSharedDriveAbsent = errors.New("shared drive not found")
	ErrSharedDriveDup    = errors.New("shared drive name ambiguous")
	ErrSameFolder        = errors.New("source and target resolve to the same folder")
	ErrTypeMismatch      = errors.New("folder and file share a name")
)
