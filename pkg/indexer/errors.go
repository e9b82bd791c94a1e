package indexer

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	// TransportError: the chain source was unreachable or returned malformed
	// data.
	TransportError ErrorKind = iota + 1
	// StorageError: a connection, query or write failure in the store.
	StorageError
	// ConversionError: a node block could not be mapped to storage entities.
	ConversionError
)

func (k ErrorKind) String() string {
	switch k {
	case TransportError:
		return "transport"
	case StorageError:
		return "storage"
	case ConversionError:
		return "conversion"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a *SyncError of the same kind.
var (
	ErrTransport  = errors.New("transport error")
	ErrStorage    = errors.New("storage error")
	ErrConversion = errors.New("conversion error")
)

// SyncError is a fatal error of the sync loop. BlockNumber is only
// meaningful when HasBlockNumber is set; resolving the tip happens before a
// block number is known.
type SyncError struct {
	Kind           ErrorKind
	BlockNumber    uint64
	HasBlockNumber bool
	Err            error
}

func newBlockError(kind ErrorKind, blockNumber uint64, err error) *SyncError {
	return &SyncError{
		Kind:           kind,
		BlockNumber:    blockNumber,
		HasBlockNumber: true,
		Err:            err,
	}
}

func (e *SyncError) Error() string {
	if e.HasBlockNumber {
		return fmt.Sprintf("block #%d: %s error: %v", e.BlockNumber, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func (e *SyncError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == TransportError
	case ErrStorage:
		return e.Kind == StorageError
	case ErrConversion:
		return e.Kind == ConversionError
	default:
		return false
	}
}
