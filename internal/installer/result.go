package installer

import (
	"errors"
	"fmt"
)

// Status is the coarse outcome of an install.
type Status int

const (
	StatusSuccess Status = iota
	StatusAlreadyInstalled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusAlreadyInstalled:
		return "already installed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureKind classifies a failed install.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNotFound
	FailureIncompatiblePlatform
	FailureImportError
	FailureOther
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNotFound:
		return "not found"
	case FailureIncompatiblePlatform:
		return "incompatible platform"
	case FailureImportError:
		return "import error"
	case FailureOther:
		return "other"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by InstallError.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrIncompatiblePlatform = errors.New("incompatible platform")
	ErrImport               = errors.New("module import failed")
	ErrInstall              = errors.New("install failed")
)

// Result is returned by every install operation.
type Result struct {
	Status  Status
	Failure FailureKind
	Message string
	// Source is the wheel path or package name the install was asked for.
	Source string
	// Module is set when the module is importable after the call.
	Module ModuleInfo
}

// OK reports whether the module is installed after the call.
func (r Result) OK() bool {
	return r.Status == StatusSuccess || r.Status == StatusAlreadyInstalled
}

// Err returns nil for successful results and an *InstallError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &InstallError{Kind: r.Failure, Source: r.Source, Message: r.Message}
}

func (r Result) String() string {
	if r.OK() {
		return r.Status.String()
	}
	return fmt.Sprintf("%s: %s", r.Failure, r.Message)
}

func success(source string, m ModuleInfo) Result {
	return Result{Status: StatusSuccess, Source: source, Module: m}
}

func alreadyInstalled(source string, m ModuleInfo) Result {
	return Result{Status: StatusAlreadyInstalled, Source: source, Module: m}
}

func failure(kind FailureKind, source, format string, args ...any) Result {
	return Result{Status: StatusFailed, Failure: kind, Source: source, Message: fmt.Sprintf(format, args...)}
}

// InstallError is the error form of a failed Result.
type InstallError struct {
	Kind    FailureKind
	Source  string
	Message string
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("installing %s: %s: %s", e.Source, e.Kind, e.Message)
}

// Is matches the sentinel for the failure kind.
func (e *InstallError) Is(target error) bool {
	switch e.Kind {
	case FailureNotFound:
		return target == ErrNotFound
	case FailureIncompatiblePlatform:
		return target == ErrIncompatiblePlatform
	case FailureImportError:
		return target == ErrImport
	default:
		return target == ErrInstall
	}
}
