package backup

import "fmt"

// ImportErrorKind classifies why an import was refused.
type ImportErrorKind string

const (
	InvalidStructure    ImportErrorKind = "InvalidStructure"
	TooLarge            ImportErrorKind = "TooLarge"
	UnsupportedFileType ImportErrorKind = "UnsupportedFileType"
	Unparseable         ImportErrorKind = "Unparseable"
)

// Sentinels for errors.Is. They carry no detail.
var (
	ErrInvalidStructure    = &ImportError{Kind: InvalidStructure}
	ErrTooLarge            = &ImportError{Kind: TooLarge}
	ErrUnsupportedFileType = &ImportError{Kind: UnsupportedFileType}
	ErrUnparseable         = &ImportError{Kind: Unparseable}
)

// ImportError is returned for every rejected import. The live state is never
// touched when one is returned.
type ImportError struct {
	Kind ImportErrorKind
	Err  error
}

func (e *ImportError) Error() string {
	msg := e.message()
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ImportError) message() string {
	switch e.Kind {
	case InvalidStructure:
		return "invalid backup: expected a jagruk backup object with a profile"
	case TooLarge:
		return "backup is too large to import"
	case UnsupportedFileType:
		return "unsupported file type: please choose a .json backup file"
	case Unparseable:
		return "backup file is not valid JSON"
	}
	return "import failed"
}

func (e *ImportError) Unwrap() error { return e.Err }

// Is matches any ImportError of the same kind.
func (e *ImportError) Is(target error) bool {
	t, ok := target.(*ImportError)
	return ok && t.Kind == e.Kind
}

func importErr(kind ImportErrorKind, err error) error {
	return &ImportError{Kind: kind, Err: err}
}
